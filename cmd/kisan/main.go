package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kisanportal/kisan/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "kisan: %v\n", err)
		return 1
	}
	return 0
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	prefsPath  string
}

func (g *globalFlags) options() app.Options {
	return app.Options{ConfigPath: g.configPath, PrefsPath: g.prefsPath}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	var (
		pollSeconds int
		debug       bool
	)

	root := &cobra.Command{
		Use:   "kisan",
		Short: "Mandi prices and a farm assistant in your terminal",
		Long: `kisan shows market (mandi) prices for a commodity, their trend and a
short-term projection, and lets you ask the farm assistant questions.

Run without arguments to start the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()
			opts.PollEvery = pollSeconds
			opts.Debug = debug
			return app.Run(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/kisan/config.toml)")
	root.PersistentFlags().StringVar(&flags.prefsPath, "prefs", "", "preferences file (default from config)")
	root.Flags().IntVar(&pollSeconds, "poll", 0, "refresh interval in seconds (default from config)")
	root.Flags().BoolVar(&debug, "debug", false, "log at debug level")

	root.AddCommand(
		newPrefsCmd(flags),
		newPricesCmd(flags),
		newCommoditiesCmd(flags),
		newLogsCmd(flags),
	)
	return root
}
