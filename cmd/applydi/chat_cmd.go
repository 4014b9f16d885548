package main

import (
	"context"
	"fmt"
	"strings"

	"applydi-client/internal/entity"
	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/service"

	"github.com/spf13/cobra"
)

const chatHelp = `Commandes :
  /docs              documents et sélection
  /toggle <id>       inclure ou exclure un document
  /upload <fichier>  ajouter un document à l'agent
  /rm <id>           supprimer un document
  /reload            recharger les documents
  /csv, /pdf         exporter la dernière réponse
  /switch <agent>    changer d'agent
  /quit              quitter
Toute autre ligne est envoyée comme question.`

func newChatCmd(c *cli) *cobra.Command {
	var agentId, page string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive workspace on one agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.container()
			if err != nil {
				return err
			}
			qs, err := c.openWorkspace(cmd.Context(), app, pageContext(agentId, page))
			if err != nil {
				return err
			}

			c.printWorkspace(qs)
			for {
				line, err := c.readLine("> ")
				if err != nil {
					return nil
				}
				quit, err := c.chatLine(cmd.Context(), app.Navigation, qs, strings.TrimSpace(line))
				if clientutils.IsKind(err, clientutils.KindUnauthorized) {
					return err
				}
				if quit {
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVarP(&agentId, "agent", "a", "", "agent id")
	cmd.Flags().StringVar(&page, "page", "", "page link such as /?agentId=3 or /chat/3")
	cmd.Flags().StringVarP(&c.cfg.App.ExportDir, "out", "o", c.cfg.App.ExportDir, "directory for exported files")
	return cmd
}

func (c *cli) printWorkspace(qs *service.QuerySession) {
	agent := qs.Agent()
	info := agent.Type.Info()
	fmt.Fprintf(c.out, "%s (%s) - %s\n", agent.Name, info.Label, info.Description)
	_ = c.printDocuments(qs.Documents(), qs.IsSelected)
	fmt.Fprintln(c.out, qs.ReadyMessage())
}

// chatLine runs one REPL line. Failures other than an expired session were
// already shown as notifications and do not end the loop.
func (c *cli) chatLine(ctx context.Context, nav service.INavigationService, qs *service.QuerySession, line string) (bool, error) {
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, "/") {
		result, err := qs.Ask(ctx, line)
		if err != nil {
			return false, err
		}
		c.printResult(result)
		return false, nil
	}

	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		fmt.Fprintln(c.out, chatHelp)
	case "/docs":
		_ = c.printDocuments(qs.Documents(), qs.IsSelected)
		fmt.Fprintln(c.out, qs.ReadyMessage())
	case "/toggle":
		qs.Toggle(arg)
		fmt.Fprintln(c.out, qs.ReadyMessage())
	case "/upload":
		if _, err := qs.Upload(ctx, arg); err != nil {
			return false, err
		}
	case "/rm":
		return false, qs.RemoveDocument(ctx, arg)
	case "/reload":
		return false, qs.Reload(ctx)
	case "/csv", "/pdf":
		file, err := qs.Export(ctx, entity.ExportKind(strings.TrimPrefix(command, "/")))
		if err != nil {
			return false, err
		}
		fmt.Fprintln(c.out, file.Path)
	case "/switch":
		dest, err := nav.Switch(ctx, qs, arg)
		if dest.Route == service.RouteLogin {
			if err == nil {
				err = clientutils.NewUnauthorizedError("Veuillez vous connecter : applydi login")
			}
			return false, err
		}
		if err != nil {
			return false, err
		}
		switch dest.Route {
		case service.RouteWorkspace:
			c.printWorkspace(qs)
		case service.RouteAgents:
			fmt.Fprintf(c.out, "Choisissez un agent : /switch <id> (voir applydi agents list). Agent actuel : %s\n", qs.Agent().Name)
		}
	default:
		fmt.Fprintln(c.out, chatHelp)
	}
	return false, nil
}
