package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"applydi-client/internal/pkg/clientutils"

	"github.com/spf13/cobra"
)

func newPrefsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change local preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "dark-mode [on|off]",
		Short:     "Show or set the dark colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.container()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				enabled, err := parseSwitch(args[0])
				if err != nil {
					return err
				}
				if err := app.Session.SetDarkMode(enabled); err != nil {
					return err
				}
			}
			fmt.Fprintf(c.out, "dark-mode: %s\n", onOff(app.Session.DarkMode()))
			return nil
		},
	})
	return cmd
}

func parseSwitch(raw string) (bool, error) {
	switch raw {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return false, clientutils.NewValidationError("expected on or off, got " + strconv.Quote(raw))
	}
	return enabled, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func newLogsCmd(c *cli) *cobra.Command {
	var level string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent client log entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.container()
			if err != nil {
				return err
			}
			entries, err := app.Logger.GetLogs(level, limit, offset)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Timestamp, e.Level, e.Module, e.Message)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "only entries of this level (INFO, WARN, ERROR)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries")
	cmd.Flags().IntVar(&offset, "offset", 0, "entries to skip")
	return cmd
}
