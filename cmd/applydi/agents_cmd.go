package main

import (
	"fmt"
	"text/tabwriter"

	"applydi-client/internal/entity"
	"applydi-client/internal/service"

	"github.com/spf13/cobra"
)

func newAgentsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "agents",
		Aliases: []string{"agent"},
		Short:   "List, create and delete agents",
	}
	cmd.AddCommand(newAgentsListCmd(c), newAgentsCreateCmd(c), newAgentsDeleteCmd(c), newAgentsTypesCmd(c))
	return cmd
}

func newAgentsListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.container()
			if err != nil {
				return err
			}
			agents, err := app.Agents.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(agents) == 0 {
				fmt.Fprintln(c.out, "Aucun agent. Créez-en un avec: applydi agents create <nom> --type sales")
				return nil
			}

			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNOM\tTYPE\tCRÉÉ LE")
			for _, a := range agents {
				created := "-"
				if a.CreatedAt != nil {
					created = a.CreatedAt.Format("02/01/2006")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Id, a.Name, a.Type.Info().Label, created)
			}
			return w.Flush()
		},
	}
}

func newAgentsCreateCmd(c *cli) *cobra.Command {
	var agentType string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.container()
			if err != nil {
				return err
			}
			agent, err := app.Agents.Create(cmd.Context(), args[0], agentType)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s\t%s\t%s\n", agent.Id, agent.Name, agent.Type.Info().Label)
			return nil
		},
	}

	cmd.Flags().StringVarP(&agentType, "type", "t", string(entity.DefaultAgentType), "agent type: sales, marketing, hr or purchase")
	return cmd
}

func newAgentsDeleteCmd(c *cli) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an agent after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.container()
			if err != nil {
				return err
			}
			var confirmer service.Confirmer = promptConfirmer{c: c}
			if yes {
				confirmer = assumeYes{}
			}
			return app.Agents.Delete(cmd.Context(), args[0], confirmer)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newAgentsTypesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "Describe the available agent types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			for _, t := range entity.AgentTypes() {
				info := t.Info()
				fmt.Fprintf(w, "%s\t%s\t%s\n", t, info.Label, info.Description)
			}
			return w.Flush()
		},
	}
}
