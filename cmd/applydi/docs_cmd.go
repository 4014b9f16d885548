package main

import (
	"fmt"

	"applydi-client/internal/entity"

	"github.com/spf13/cobra"
)

func newDocsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docs",
		Aliases: []string{"documents"},
		Short:   "Manage documents of an agent or of the general corpus",
	}
	cmd.AddCommand(newDocsListCmd(c), newDocsUploadCmd(c), newDocsRemoveCmd(c))
	return cmd
}

func newDocsListCmd(c *cli) *cobra.Command {
	var agentId string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents (general corpus unless --agent is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.container()
			if err != nil {
				return err
			}
			if agentId == "" {
				docs, err := app.Documents.List(cmd.Context(), nil)
				if err != nil {
					return err
				}
				return c.printDocuments(docs, nil)
			}

			qs, err := c.openWorkspace(cmd.Context(), app, pageContext(agentId, ""))
			if err != nil {
				return err
			}
			if err := c.printDocuments(qs.Documents(), qs.IsSelected); err != nil {
				return err
			}
			fmt.Fprintln(c.out, qs.ReadyMessage())
			return nil
		},
	}

	cmd.Flags().StringVarP(&agentId, "agent", "a", "", "agent id")
	return cmd
}

func newDocsUploadCmd(c *cli) *cobra.Command {
	var agentId string
	var anyType bool

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload files (.pdf, .txt, .docx)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkUploadable(args, anyType); err != nil {
				return err
			}
			app, err := c.container()
			if err != nil {
				return err
			}

			if agentId == "" {
				for _, path := range args {
					doc, err := app.Documents.Upload(cmd.Context(), path, nil)
					if err != nil {
						app.Notifier.Failure(cmd.Context(), "Erreur lors de l'ajout du document", err)
						return err
					}
					app.Notifier.Success(cmd.Context(), fmt.Sprintf("Document %q ajouté avec succès !", doc.Filename), nil)
					fmt.Fprintf(c.out, "%s\t%s\n", doc.Id, doc.Filename)
				}
				return nil
			}

			qs, err := c.openWorkspace(cmd.Context(), app, pageContext(agentId, ""))
			if err != nil {
				return err
			}
			for _, path := range args {
				doc, err := qs.Upload(cmd.Context(), path)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%s\t%s\n", doc.Id, doc.Filename)
			}
			fmt.Fprintln(c.out, qs.ReadyMessage())
			return nil
		},
	}

	cmd.Flags().StringVarP(&agentId, "agent", "a", "", "agent id (general corpus when omitted)")
	cmd.Flags().BoolVar(&anyType, "any-type", false, "send files whose extension is not in "+fmt.Sprint(entity.AllowedUploadExtensions))
	return cmd
}

func newDocsRemoveCmd(c *cli) *cobra.Command {
	var agentId string

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.container()
			if err != nil {
				return err
			}

			if agentId == "" {
				if err := app.Documents.Remove(cmd.Context(), args[0]); err != nil {
					app.Notifier.Failure(cmd.Context(), "Erreur lors de la suppression", err)
					return err
				}
				app.Notifier.Success(cmd.Context(), "Document supprimé", nil)
				return nil
			}

			qs, err := c.openWorkspace(cmd.Context(), app, pageContext(agentId, ""))
			if err != nil {
				return err
			}
			return qs.RemoveDocument(cmd.Context(), args[0])
		},
	}

	cmd.Flags().StringVarP(&agentId, "agent", "a", "", "agent id")
	return cmd
}
