package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-neuro/internal/pipeline"
)

func psdCmd(a *app) *cobra.Command {
	var (
		signal       string
		epoch        string
		fs           float64
		intervalSize float64
		overlap      float64
		fullRange    bool
	)

	c := &cobra.Command{
		Use:   "psd <session>",
		Short: "Print spectral statistics of a session signal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.loadSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			an := pipeline.Analysis{
				Name:         "psd",
				Kind:         pipeline.KindPSD,
				TimeUnit:     a.cfg.TimeUnit,
				Epoch:        epoch,
				Signal:       signal,
				SamplingRate: fs,
				FullRange:    fullRange,
				Overlap:      overlap,
			}
			if intervalSize > 0 {
				an.Kind = pipeline.KindMeanPSD
				an.IntervalSize = intervalSize
			}

			data, err := pipeline.RunOne(sess, an)
			if err != nil {
				return err
			}
			d := data.(*pipeline.SpectrumData)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Column\tBins\tPeak [Hz]\tCentroid [Hz]\tSpread [Hz]\tRolloff [Hz]\tFlatness\tPower\n")
			fmt.Fprintf(tw, "------\t----\t---------\t-------------\t-----------\t------------\t--------\t-----\n")
			for i, col := range d.Columns {
				st := d.Stats[i]
				fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.6f\t%.6g\n",
					col, st.BinCount, st.PeakFrequency, st.Centroid, st.Spread, st.Rolloff, st.Flatness, st.Power)
			}
			return tw.Flush()
		},
	}

	c.Flags().StringVar(&signal, "signal", "", "signal name (required)")
	c.Flags().StringVar(&epoch, "epoch", "", "restrict to a session epoch")
	c.Flags().Float64Var(&fs, "fs", 0, "sampling rate in Hz (default: estimated)")
	c.Flags().Float64Var(&intervalSize, "interval", 0, "average over intervals of this length (mean PSD)")
	c.Flags().Float64Var(&overlap, "overlap", pipeline.DefaultOverlap, "interval overlap for the mean PSD")
	c.Flags().BoolVar(&fullRange, "full-range", false, "include negative frequencies")

	_ = c.MarkFlagRequired("signal")
	return c
}
