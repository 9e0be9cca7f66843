package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/kisanportal/kisan/internal/app"
	"github.com/kisanportal/kisan/internal/logtail"
)

func newLogsCmd(flags *globalFlags) *cobra.Command {
	var (
		lines int
		level string
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of kisan's log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			minLevel, err := zapcore.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("invalid --level: %w", err)
			}
			cfg, err := app.LoadConfig(flags.options())
			if err != nil {
				return err
			}

			tail, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			tail = logtail.Filter(tail, minLevel)
			if !raw {
				tail = logtail.FormatLines(tail)
			}

			out := cmd.OutOrStdout()
			if len(tail) == 0 {
				fmt.Fprintf(out, "no log entries in %s\n", cfg.LogFile)
				return nil
			}
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 200, "number of lines to read from the end")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print JSON lines unformatted")
	return cmd
}
