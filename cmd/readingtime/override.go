package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/readingtime/readingtime/internal/host"
	"github.com/readingtime/readingtime/pkg/field"
)

func newOverrideCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "override <entry.yaml> <locale> [minutes]",
		Short: "Set or reset the reading time of one locale",
		Long: `Override stores a manual reading time for a locale. An empty minutes
argument ("") resets the locale to its computed reading time. Without a
minutes argument the value is prompted for on the terminal.

Run it while no watch process holds the store file, or use
PUT /api/v1/results/{locale} against the running watch instead.

Examples:
  readingtime override entry.yaml en-US 3.5
  readingtime override entry.yaml en-US ""
  readingtime override entry.yaml de-DE`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryPath, locale := args[0], args[1]

			entry, err := host.LoadEntry(entryPath)
			if err != nil {
				return err
			}
			st, closeStore, err := openStore(a.cfg.Host.StorePath)
			if err != nil {
				return err
			}
			defer closeStore()

			ctrl, err := field.New(entry, a.cfg.Instance.BodyFieldID, st.Field(locale), a.cfg.Installation)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			before := ctrl.Current()
			res := before
			if len(args) == 3 {
				res, err = ctrl.Submit(args[2])
			} else {
				res, err = ctrl.Edit(cmd.Context(), host.Terminal{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()})
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if err != nil {
				return fmt.Errorf("override %s: %w", locale, err)
			}

			switch {
			case res.Equal(before):
				fmt.Fprintf(cmd.OutOrStdout(), "%s: unchanged (%s)\n", locale, res.Summary())
			case res.Overridden:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: overridden to %s\n", locale, res.Summary())
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: reset to %s\n", locale, res.Summary())
			}
			return nil
		},
	}
}
