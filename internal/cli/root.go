// Package cli implements the napctl command tree.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-neuro/internal/config"
	"github.com/cwbudde/algo-neuro/internal/logging"
)

// Execute runs napctl with the process arguments.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by every subcommand once the root pre-run hook
// has loaded configuration and logging.
type app struct {
	v       *viper.Viper
	cfg     *config.Config
	cleanup func() error
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		debug   bool
	)
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:          "napctl",
		Short:        "Neurophysiology analysis of spike trains and sampled signals",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.v.BindPFlag("log.debug", cmd.Root().PersistentFlags().Lookup("debug")); err != nil {
				return err
			}
			cfg, err := config.Load(a.v, cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg

			cleanup, err := logging.Setup(logging.Config{
				Format: logging.Format(cfg.Log.Format),
				Debug:  cfg.Log.Debug,
				File:   cfg.Log.File,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			a.cleanup = cleanup

			logger := logging.L()
			logger.Debug("napctl.start", "command", cmd.CommandPath(), "config", a.v.ConfigFileUsed())
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if a.cleanup != nil {
				return a.cleanup()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: napctl.{yaml,json,toml} in . or ./configs)")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging with source locations")

	cmd.AddCommand(
		infoCmd(a),
		importCmd(a),
		sessionsCmd(a),
		runCmd(a),
		psdCmd(a),
	)
	return cmd
}
