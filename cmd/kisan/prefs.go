package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kisanportal/kisan/internal/app"
	"github.com/kisanportal/kisan/internal/prefs"
	"github.com/kisanportal/kisan/internal/ui"
)

// openPrefs loads config and an initialized preference store. The caller
// closes the store.
func openPrefs(flags *globalFlags) (*prefs.Store, error) {
	cfg, err := app.LoadConfig(flags.options())
	if err != nil {
		return nil, err
	}
	store := app.OpenPrefs(cfg, nil, nil)
	store.Initialize()
	return store, nil
}

func newPrefsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change saved preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current theme and language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefs(flags)
			if err != nil {
				return err
			}
			defer store.Close()
			printPrefs(cmd, store.State())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "theme <light|dark|system>",
		Short:     "Set the theme mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: modeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefs(flags)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.SetModeString(args[0]); err != nil {
				return fmt.Errorf("%w (choose %s)", err, strings.Join(modeNames(), ", "))
			}
			printPrefs(cmd, store.State())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "lang <tag>",
		Short: "Set the interface language (en, hi, mr)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefs(flags)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.SetLanguageString(args[0]); err != nil {
				return err
			}
			printPrefs(cmd, store.State())
			return nil
		},
	})

	return cmd
}

func printPrefs(cmd *cobra.Command, st prefs.State) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "theme:     %s\n", st.Mode)
	fmt.Fprintf(out, "system:    %s\n", st.System)
	fmt.Fprintf(out, "effective: %s\n", st.Effective)
	fmt.Fprintf(out, "language:  %s (%s)\n", st.Language, ui.LanguageName(st.Language))
	if !st.Persistent {
		fmt.Fprintln(out, "note:      preferences file unavailable; changes are not saved")
	}
}

func modeNames() []string {
	modes := prefs.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return names
}
