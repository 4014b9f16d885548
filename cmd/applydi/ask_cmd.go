package main

import (
	"errors"
	"fmt"
	"strings"

	"applydi-client/internal/entity"

	"github.com/spf13/cobra"
)

func newAskCmd(c *cli) *cobra.Command {
	var agentId, page string
	var only, exclude, exports []string

	cmd := &cobra.Command{
		Use:   "ask <question>...",
		Short: "Ask an agent a question about its documents",
		Long: `Ask an agent a question. Every document of the agent takes part unless
--only or --exclude narrows the selection. When the answer allows it, --export
saves it as CSV and/or PDF.`,
		Example: `  applydi ask --agent 3 "Quels sont les tarifs 2024 ?"
  applydi ask --page "/?agentId=3" --exclude 12 --export csv "Liste des fournisseurs"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := make([]entity.ExportKind, 0, len(exports))
			for _, raw := range exports {
				kind, err := entity.ParseExportKind(raw)
				if err != nil {
					return err
				}
				kinds = append(kinds, kind)
			}

			app, err := c.container()
			if err != nil {
				return err
			}
			qs, err := c.openWorkspace(cmd.Context(), app, pageContext(agentId, page))
			if err != nil {
				return err
			}

			if len(only) > 0 {
				qs.Only(only)
			}
			for _, id := range exclude {
				if qs.IsSelected(id) {
					qs.Toggle(id)
				}
			}
			app.Notifier.Info(cmd.Context(), qs.ReadyMessage(), nil)

			result, err := qs.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			c.printResult(result)

			var exportErrs []error
			for _, kind := range kinds {
				file, err := qs.Export(cmd.Context(), kind)
				if err != nil {
					exportErrs = append(exportErrs, err)
					continue
				}
				fmt.Fprintf(c.out, "%s\n", file.Path)
			}
			return errors.Join(exportErrs...)
		},
	}

	cmd.Flags().StringVarP(&agentId, "agent", "a", "", "agent id")
	cmd.Flags().StringVar(&page, "page", "", "page link such as /?agentId=3 or /chat/3")
	cmd.Flags().StringSliceVar(&only, "only", nil, "use only these document ids")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "leave these document ids out")
	cmd.Flags().StringSliceVar(&exports, "export", nil, "save the answer as csv and/or pdf")
	cmd.Flags().StringVarP(&c.cfg.App.ExportDir, "out", "o", c.cfg.App.ExportDir, "directory for exported files")
	return cmd
}
