package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/group"
	"github.com/cwbudde/algo-neuro/io/session"
)

func infoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <session>",
		Short: "Print units, epochs and signals of a session file or stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.loadSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printInfo(cmd.OutOrStdout(), sess)
		},
	}
}

func printInfo(w io.Writer, sess *session.Session) error {
	sup := sess.Spikes.TimeSupport()
	fmt.Fprintf(w, "Session: %s\n", sess.Name)
	fmt.Fprintf(w, "Time support: %s (%.3f s)\n\n", sup, sup.TotLength(core.Seconds))

	names := make([]string, 0)
	for _, n := range sess.Spikes.InfoNames() {
		if n != group.RateKey {
			names = append(names, n)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"Unit", "Spikes", "Rate [Hz]"}
	header = append(header, names...)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, k := range sess.Spikes.Keys() {
		unit, err := sess.Spikes.Unit(k)
		if err != nil {
			return err
		}
		row := []string{fmt.Sprint(k), fmt.Sprint(unit.Len()), fmt.Sprintf("%.4f", sess.Spikes.Rate(k))}
		for _, n := range names {
			col, _ := sess.Spikes.GetInfo(n)
			if v, ok := col[k]; ok {
				row = append(row, fmt.Sprintf("%g", v))
			} else {
				row = append(row, "-")
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(sess.Epochs) > 0 {
		fmt.Fprintf(w, "\nEpochs:\n")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, name := range sess.EpochNames() {
			ep := sess.Epochs[name]
			fmt.Fprintf(tw, "  %s\t%d intervals\t%.3f s\t%s\n", name, ep.Len(), ep.TotLength(core.Seconds), ep)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(sess.Signals) > 0 {
		fmt.Fprintf(w, "\nSignals:\n")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, name := range sess.SignalNames() {
			sig := sess.Signals[name]
			fmt.Fprintf(tw, "  %s\t%d samples\t%.3f Hz\n", name, sig.Len(), sig.Rate())
		}
		return tw.Flush()
	}
	return nil
}
