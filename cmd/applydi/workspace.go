package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"applydi-client/internal/bootstrap"
	"applydi-client/internal/entity"
	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/service"
)

// pageContext turns --agent or --page into what the navigation service
// expects. --page wins.
func pageContext(agentId, page string) string {
	if strings.TrimSpace(page) != "" {
		return page
	}
	if strings.TrimSpace(agentId) != "" {
		return "/chat/" + strings.TrimSpace(agentId)
	}
	return ""
}

// openWorkspace enters the workspace named by page or explains the redirect.
func (c *cli) openWorkspace(ctx context.Context, app *bootstrap.Container, page string) (*service.QuerySession, error) {
	dest, qs, err := app.Navigation.Enter(ctx, page)
	if qs != nil {
		return qs, nil
	}
	if err != nil {
		return nil, err
	}
	switch dest.Route {
	case service.RouteLogin:
		return nil, clientutils.NewUnauthorizedError("Veuillez vous connecter : applydi login")
	default:
		return nil, clientutils.NewValidationError("Choisissez un agent avec --agent <id> (voir applydi agents list)")
	}
}

// checkUploadable applies the file picker's extension filter unless anyType
// is set.
func checkUploadable(paths []string, anyType bool) error {
	if anyType {
		return nil
	}
	for _, p := range paths {
		if !entity.IsAllowedUpload(p) {
			return clientutils.NewValidationError(fmt.Sprintf(
				"%s: type de fichier non proposé (%s), utilisez --any-type pour l'envoyer quand même",
				p, strings.Join(entity.AllowedUploadExtensions, ", ")))
		}
	}
	return nil
}

func (c *cli) printDocuments(docs []*entity.Document, selected func(string) bool) error {
	if len(docs) == 0 {
		fmt.Fprintln(c.out, "Aucun document.")
		return nil
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tFICHIER\tAJOUTÉ LE")
	for _, d := range docs {
		mark := " "
		if selected != nil && selected(d.Id) {
			mark = "x"
		}
		created := "-"
		if !d.CreatedAt.IsZero() {
			created = d.CreatedAt.Format("02/01/2006 15:04")
		}
		fmt.Fprintf(w, "[%s]\t%s\t%s\t%s\n", mark, d.Id, d.Filename, created)
	}
	return w.Flush()
}

func (c *cli) printResult(r *entity.QueryResult) {
	fmt.Fprintln(c.out, r.Answer)

	var formats []string
	if r.Capabilities.CSV {
		formats = append(formats, "csv")
	}
	if r.Capabilities.PDF {
		formats = append(formats, "pdf")
	}
	if len(formats) > 0 {
		fmt.Fprintf(c.out, "\nExports disponibles : %s\n", strings.Join(formats, ", "))
	}
}
