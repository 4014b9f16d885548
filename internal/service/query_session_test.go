package service

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"applydi-client/internal/dto"
	"applydi-client/internal/entity"
	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/testsupport/fakeapi"
	"applydi-client/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flexStrings(ids []dto.FlexID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func TestWorkspaceStartsWithEverythingSelected(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)

	qs, ids := h.workspace(t, "hr", "a.pdf", "b.pdf")

	snap := qs.Snapshot()
	assert.Equal(t, entity.AgentTypeHR, snap.Agent.Type)
	assert.Len(t, snap.Documents, 2)
	assert.Equal(t, ids, snap.Selected)
	assert.Equal(t, entity.QueryStateIdle, snap.State)
	assert.Nil(t, snap.Result)
	assert.Equal(t, "2 documents prêts pour répondre à vos questions", qs.ReadyMessage())
}

func TestToggleSelection(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, ids := h.workspace(t, "sales", "a.pdf", "b.pdf")

	assert.False(t, qs.Toggle(ids[0]))
	assert.Equal(t, []string{ids[1]}, qs.Selection())
	assert.Equal(t, "1 document prêt pour répondre à vos questions", qs.ReadyMessage())

	assert.False(t, qs.Toggle("999"))
	assert.Equal(t, []string{ids[1]}, qs.Selection())

	qs.Only([]string{ids[0], "999"})
	assert.Equal(t, []string{ids[0]}, qs.Selection())
	assert.True(t, qs.IsSelected(ids[0]))
}

func TestAskSendsSelectionAndAgentType(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, ids := h.workspace(t, "marketing", "a.pdf", "b.pdf", "c.pdf")
	h.backend.SetAnswer(dto.AskResponse{Answer: "Tableau prêt", CanGenerateCSV: true, HasTable: true})
	qs.Toggle(ids[1])

	result, err := qs.Ask(context.Background(), "  Quels sont les prix ?  ")

	require.NoError(t, err)
	assert.Equal(t, "Tableau prêt", result.Answer)
	assert.True(t, result.Capabilities.CSV)
	assert.False(t, result.Capabilities.PDF)
	assert.True(t, result.Capabilities.HasTabularContent)
	assert.Equal(t, entity.QueryStateAnswered, qs.State())

	reqs := h.backend.AskRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Quels sont les prix ?", reqs[0].Question)
	assert.Equal(t, []string{ids[0], ids[2]}, flexStrings(reqs[0].SelectedDocuments))
	assert.Equal(t, "marketing", reqs[0].AgentType)
	assert.Contains(t, h.recorder.messages(events.LevelSuccess), "Réponse générée !")
}

func TestAskWithEmptySelectionIsAllowed(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, _ := h.workspace(t, "sales")

	_, err := qs.Ask(context.Background(), "Bonjour ?")

	require.NoError(t, err)
	assert.Empty(t, h.backend.AskRequests()[0].SelectedDocuments)
}

func TestBlankQuestionNeverReachesBackend(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, _ := h.workspace(t, "sales", "a.pdf")

	_, err := qs.Ask(context.Background(), " \n ")

	assert.True(t, clientutils.IsKind(err, clientutils.KindValidation))
	assert.Equal(t, 0, h.backend.Calls(fakeapi.RouteAsk))
	assert.Equal(t, entity.QueryStateIdle, qs.State())
	assert.Contains(t, h.recorder.messages(events.LevelError), "Veuillez poser une question")
}

func TestOnlyOneQuestionInFlight(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, _ := h.workspace(t, "sales", "a.pdf")

	arrived, release := h.backend.Hold(fakeapi.RouteAsk)
	defer release()

	done := make(chan error, 1)
	go func() {
		_, err := qs.Ask(context.Background(), "première")
		done <- err
	}()
	<-arrived
	assert.Equal(t, entity.QueryStateSubmitting, qs.State())

	_, err := qs.Ask(context.Background(), "seconde")
	assert.ErrorIs(t, err, ErrQueryInFlight)

	release()
	require.NoError(t, <-done)
	assert.Equal(t, 1, h.backend.Calls(fakeapi.RouteAsk))
	assert.Equal(t, entity.QueryStateAnswered, qs.State())
}

func TestAskFailureReturnsToIdle(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, _ := h.workspace(t, "sales", "a.pdf")
	h.backend.Fail(fakeapi.RouteAsk, http.StatusInternalServerError, "LLM quota exceeded")

	_, err := qs.Ask(context.Background(), "Question")

	assert.True(t, clientutils.IsKind(err, clientutils.KindServer))
	snap := qs.Snapshot()
	assert.Equal(t, entity.QueryStateIdle, snap.State)
	assert.Error(t, snap.LastError)
	assert.Contains(t, h.recorder.messages(events.LevelError), "Erreur lors de la génération de la réponse : LLM quota exceeded")

	_, err = qs.Ask(context.Background(), "Question")
	assert.NoError(t, err)
}

func TestAskUnauthorizedClearsSession(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, _ := h.workspace(t, "sales", "a.pdf")
	h.backend.Fail(fakeapi.RouteAsk, http.StatusUnauthorized, "Token expired")

	_, err := qs.Ask(context.Background(), "Question")

	assert.True(t, clientutils.IsKind(err, clientutils.KindUnauthorized))
	_, ok := h.session.Credential()
	assert.False(t, ok)
}

func TestExportNeedsAnAllowedAnswer(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, _ := h.workspace(t, "sales", "a.pdf")

	_, err := qs.ExportCSV(context.Background())
	assert.True(t, clientutils.IsKind(err, clientutils.KindPrecondition))

	h.backend.SetAnswer(dto.AskResponse{Answer: "x", CanGeneratePDF: true})
	_, err = qs.Ask(context.Background(), "Question")
	require.NoError(t, err)

	_, err = qs.ExportCSV(context.Background())
	assert.True(t, clientutils.IsKind(err, clientutils.KindPrecondition))
	assert.Equal(t, 0, h.backend.Calls(fakeapi.RouteGenerateCSV))

	file, err := qs.ExportPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.ExportPDF, file.Kind)
}

func TestExportReplaysTheAnsweredContext(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, ids := h.workspace(t, "hr", "a.pdf", "b.pdf")
	h.backend.SetAnswer(dto.AskResponse{Answer: "x", CanGenerateCSV: true})

	qs.Toggle(ids[0])
	_, err := qs.Ask(context.Background(), "Liste des salariés")
	require.NoError(t, err)

	// later edits must not leak into the export
	qs.Toggle(ids[0])
	qs.Toggle(ids[1])

	file, err := qs.ExportCSV(context.Background())
	require.NoError(t, err)

	reqs := h.backend.ExportRequests("csv")
	require.Len(t, reqs, 1)
	assert.Equal(t, "Liste des salariés", reqs[0].Question)
	assert.Equal(t, []string{ids[1]}, flexStrings(reqs[0].SelectedDocuments))
	assert.Equal(t, "hr", reqs[0].AgentType)

	assert.Equal(t, "report_hr_20261018_090503.csv", file.Filename)
	assert.Equal(t, filepath.Join(h.exportDir, file.Filename), file.Path)
	raw, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, "csv:Liste des salariés", string(raw))
	assert.Equal(t, len(raw), file.Size)
}

func TestExportsOfOneKindAreExclusive(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, _ := h.workspace(t, "sales", "a.pdf")
	h.backend.SetAnswer(dto.AskResponse{Answer: "x", CanGenerateCSV: true, CanGeneratePDF: true})
	_, err := qs.Ask(context.Background(), "Question")
	require.NoError(t, err)

	arrived, release := h.backend.Hold(fakeapi.RouteGenerateCSV)
	defer release()

	done := make(chan error, 1)
	go func() {
		_, err := qs.ExportCSV(context.Background())
		done <- err
	}()
	<-arrived

	_, err = qs.ExportCSV(context.Background())
	assert.ErrorIs(t, err, ErrExportInFlight)

	_, err = qs.ExportPDF(context.Background())
	assert.NoError(t, err)

	release()
	require.NoError(t, <-done)
	assert.Equal(t, 1, h.backend.Calls(fakeapi.RouteGenerateCSV))

	_, err = qs.ExportCSV(context.Background())
	assert.NoError(t, err)
}

func TestRemoveDocumentUpdatesInventoryAndSelection(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, ids := h.workspace(t, "sales", "a.pdf", "b.pdf")

	require.NoError(t, qs.RemoveDocument(context.Background(), ids[0]))

	snap := qs.Snapshot()
	require.Len(t, snap.Documents, 1)
	assert.Equal(t, ids[1], snap.Documents[0].Id)
	assert.Equal(t, []string{ids[1]}, snap.Selected)
	assert.Contains(t, h.recorder.messages(events.LevelSuccess), "Document supprimé")
}

func TestRemoveDocumentFailureChangesNothing(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, ids := h.workspace(t, "sales", "a.pdf", "b.pdf")
	h.backend.Fail(fakeapi.RouteDeleteDocument, http.StatusInternalServerError, "boom")

	err := qs.RemoveDocument(context.Background(), ids[0])

	assert.Error(t, err)
	snap := qs.Snapshot()
	assert.Len(t, snap.Documents, 2)
	assert.Equal(t, ids, snap.Selected)
}

func TestRemoveUnknownDocument(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, _ := h.workspace(t, "sales", "a.pdf")

	err := qs.RemoveDocument(context.Background(), "999")

	assert.True(t, clientutils.IsKind(err, clientutils.KindNotFound))
	assert.Equal(t, 0, h.backend.Calls(fakeapi.RouteDeleteDocument))
}

func TestReloadOlderThanRemovalIsDiscarded(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, ids := h.workspace(t, "sales", "a.pdf", "b.pdf")

	arrived, release := h.backend.Hold(fakeapi.RouteListDocuments)
	defer release()

	done := make(chan error, 1)
	go func() {
		done <- qs.Reload(context.Background())
	}()
	<-arrived

	require.NoError(t, qs.RemoveDocument(context.Background(), ids[0]))

	release()
	assert.ErrorIs(t, <-done, ErrStaleResult)

	snap := qs.Snapshot()
	require.Len(t, snap.Documents, 1)
	assert.Equal(t, ids[1], snap.Documents[0].Id)
	assert.Equal(t, []string{ids[1]}, snap.Selected)
}

func TestUploadReloadsAndSelectsAll(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, ids := h.workspace(t, "purchase", "a.pdf")
	qs.Toggle(ids[0])

	doc, err := qs.Upload(context.Background(), writeFile(t, "devis.docx", "contenu"))

	require.NoError(t, err)
	assert.Equal(t, "devis.docx", doc.Filename)
	assert.Equal(t, 1, h.backend.Calls(fakeapi.RouteUploadAgent))
	snap := qs.Snapshot()
	assert.Len(t, snap.Documents, 2)
	assert.Equal(t, []string{ids[0], doc.Id}, snap.Selected)
	assert.Contains(t, h.recorder.messages(events.LevelSuccess), `Document "devis.docx" ajouté avec succès !`)
}

func TestUploadFailureKeepsInventory(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	qs, _ := h.workspace(t, "sales", "a.pdf")

	_, err := qs.Upload(context.Background(), writeFile(t, "virus.exe", "MZ"))

	assert.Error(t, err)
	assert.Len(t, qs.Documents(), 1)
	assert.Equal(t, 1, h.backend.Calls(fakeapi.RouteListDocuments))
}
