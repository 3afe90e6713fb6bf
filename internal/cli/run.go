package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-neuro/internal/logging"
	"github.com/cwbudde/algo-neuro/internal/output"
	"github.com/cwbudde/algo-neuro/internal/pipeline"
)

func runCmd(a *app) *cobra.Command {
	var (
		pipelineFile string
		sessionRef   string
		vars         []string
		format       string
		outDir       string
		toStdout     bool
	)

	c := &cobra.Command{
		Use:   "run",
		Short: "Run the analyses of an HCL pipeline file against a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if format == "" {
				format = a.cfg.Output.Format
			}
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = a.cfg.Output.Dir
			}

			overrides, err := pipeline.ParseVars(vars)
			if err != nil {
				return err
			}
			analyses, err := pipeline.LoadFile(ctx, pipelineFile, overrides)
			if err != nil {
				return err
			}
			sess, err := a.loadSession(ctx, sessionRef)
			if err != nil {
				return err
			}

			results, runErr := pipeline.Run(ctx, sess, analyses)

			if toStdout {
				for _, r := range results {
					if err := output.Encode(cmd.OutOrStdout(), f, r); err != nil {
						return errors.Join(runErr, err)
					}
				}
				return runErr
			}

			paths, err := output.WriteDir(outDir, f, results)
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			logging.FromContext(ctx).Info("pipeline.written", "dir", outDir, "results", len(paths))
			return errors.Join(runErr, err)
		},
	}

	c.Flags().StringVarP(&pipelineFile, "pipeline", "p", "", "HCL pipeline file (required)")
	c.Flags().StringVarP(&sessionRef, "session", "s", "", "session file, stored session ID or name (required)")
	c.Flags().StringArrayVar(&vars, "var", nil, "override a pipeline variable, name=value (repeatable)")
	c.Flags().StringVar(&format, "format", "", "output format: json|msgpack (default from config)")
	c.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	c.Flags().BoolVar(&toStdout, "stdout", false, "write results to stdout instead of files")

	_ = c.MarkFlagRequired("pipeline")
	_ = c.MarkFlagRequired("session")
	return c
}
