package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"applydi-client/internal/entity"
	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/pkg/logger"
	"applydi-client/internal/repository/contract"
	"applydi-client/pkg/events"
	"applydi-client/pkg/selection"
)

// QuerySnapshot is a consistent view of a QuerySession.
type QuerySnapshot struct {
	Agent     entity.Agent
	Documents []*entity.Document
	Selected  []string
	State     entity.QueryState
	Result    *entity.QueryResult
	LastError error
}

// QuerySession is the per-agent workspace: the active agent, its document
// inventory, the selection over it and the question/answer state machine.
// It is only ever handed out fully initialised by the navigation service.
//
// Backend calls run without the lock. Results are applied only when the
// session still shows the agent they were started for. Inventory fetches
// also lose to any inventory change made while they were in flight.
type QuerySession struct {
	documents IDocumentService
	queries   contract.QueryRepository
	session   ISessionService
	saver     FileSaver
	notifier  INotificationService
	logger    logger.ILogger
	now       func() time.Time

	mu         sync.Mutex
	generation uint64
	revision   uint64
	agent      entity.Agent
	inventory  []*entity.Document
	selection  *selection.Set
	state      entity.QueryState
	result     *entity.QueryResult
	lastErr    error
	exporting  map[entity.ExportKind]bool
}

type querySessionDeps struct {
	documents IDocumentService
	queries   contract.QueryRepository
	session   ISessionService
	saver     FileSaver
	notifier  INotificationService
	logger    logger.ILogger
	now       func() time.Time
}

func newQuerySession(d querySessionDeps) *QuerySession {
	if d.now == nil {
		d.now = time.Now
	}
	return &QuerySession{
		documents: d.documents,
		queries:   d.queries,
		session:   d.session,
		saver:     d.saver,
		notifier:  d.notifier,
		logger:    d.logger,
		now:       d.now,
		selection: selection.New(nil),
		state:     entity.QueryStateIdle,
		exporting: map[entity.ExportKind]bool{},
	}
}

// activate replaces everything the session shows in one step.
func (q *QuerySession) activate(ctx context.Context, agent *entity.Agent, docs []*entity.Document) {
	q.mu.Lock()
	q.generation++
	q.revision++
	q.agent = *agent
	q.inventory = docs
	q.selection = selection.New(entity.DocumentIds(docs))
	q.state = entity.QueryStateIdle
	q.result = nil
	q.lastErr = nil
	q.exporting = map[entity.ExportKind]bool{}
	q.mu.Unlock()

	q.logger.Info("WORKSPACE", "Agent activated", map[string]interface{}{"agent_id": agent.Id, "documents": len(docs)})
	q.notifier.Emit(ctx, events.TypeAgentActivated, map[string]interface{}{"agent_id": agent.Id, "name": agent.Name, "type": agent.Type.String()})
	q.notifier.Emit(ctx, events.TypeInventoryLoaded, map[string]interface{}{"agent_id": agent.Id, "count": len(docs)})
}

func (q *QuerySession) Agent() entity.Agent {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.agent
}

func (q *QuerySession) Documents() []*entity.Document {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*entity.Document(nil), q.inventory...)
}

func (q *QuerySession) Selection() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.selection.IDs()
}

func (q *QuerySession) IsSelected(documentId string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.selection.Contains(entity.CanonicalID(documentId))
}

// Toggle flips one document in or out of the selection. Ids outside the
// inventory are ignored.
func (q *QuerySession) Toggle(documentId string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.selection.Toggle(entity.CanonicalID(documentId))
}

// Only narrows the selection to ids, leaving unknown ids out.
func (q *QuerySession) Only(ids []string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[entity.CanonicalID(id)] = true
	}
	for _, d := range q.inventory {
		if keep[d.Id] {
			q.selection.Select(d.Id)
		} else {
			q.selection.Deselect(d.Id)
		}
	}
}

func (q *QuerySession) State() entity.QueryState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

func (q *QuerySession) Result() *entity.QueryResult {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.result
}

func (q *QuerySession) Snapshot() QuerySnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return QuerySnapshot{
		Agent:     q.agent,
		Documents: append([]*entity.Document(nil), q.inventory...),
		Selected:  q.selection.IDs(),
		State:     q.state,
		Result:    q.result,
		LastError: q.lastErr,
	}
}

// ReadyMessage is the "N document(s) prêt(s)" banner text.
func (q *QuerySession) ReadyMessage() string {
	n := len(q.Selection())
	if n > 1 {
		return fmt.Sprintf("%d documents prêts pour répondre à vos questions", n)
	}
	return fmt.Sprintf("%d document prêt pour répondre à vos questions", n)
}

// Reload refetches the inventory of the active agent and selects all of it.
func (q *QuerySession) Reload(ctx context.Context) error {
	q.mu.Lock()
	gen, rev := q.generation, q.revision
	agentId := q.agent.Id
	q.mu.Unlock()

	docs, err := q.documents.List(ctx, &agentId)
	if err != nil {
		q.notifier.Failure(ctx, "Erreur lors du chargement des documents", err)
		return err
	}

	q.mu.Lock()
	if gen != q.generation || rev != q.revision {
		q.mu.Unlock()
		return ErrStaleResult
	}
	q.revision++
	q.inventory = docs
	q.selection = selection.New(entity.DocumentIds(docs))
	q.mu.Unlock()

	q.notifier.Emit(ctx, events.TypeInventoryLoaded, map[string]interface{}{"agent_id": agentId, "count": len(docs)})
	return nil
}

// Upload attaches the file at path to the active agent, then reloads the
// inventory so the new document shows up selected.
func (q *QuerySession) Upload(ctx context.Context, path string) (*entity.Document, error) {
	agentId := q.Agent().Id

	doc, err := q.documents.Upload(ctx, path, &agentId)
	if err != nil {
		q.notifier.Failure(ctx, "Erreur lors de l'ajout du document", err)
		return nil, err
	}

	q.notifier.Success(ctx, fmt.Sprintf("Document %q ajouté avec succès !", doc.Filename), map[string]interface{}{"document_id": doc.Id})
	q.notifier.Emit(ctx, events.TypeDocumentUploaded, map[string]interface{}{"agent_id": agentId, "document_id": doc.Id})

	if err := q.Reload(ctx); err != nil {
		return doc, err
	}
	return doc, nil
}

// RemoveDocument deletes a document on the backend, then drops it from the
// inventory and the selection together. Nothing changes locally on failure.
func (q *QuerySession) RemoveDocument(ctx context.Context, documentId string) error {
	id := entity.CanonicalID(documentId)

	q.mu.Lock()
	gen := q.generation
	known := q.selection.Known(id)
	q.mu.Unlock()
	if !known {
		err := clientutils.NewNotFoundError("Document introuvable dans l'inventaire de cet agent")
		q.notifier.Failure(ctx, "Erreur lors de la suppression", err)
		return err
	}

	if err := q.documents.Remove(ctx, id); err != nil {
		q.notifier.Failure(ctx, "Erreur lors de la suppression", err)
		return err
	}

	q.mu.Lock()
	if gen == q.generation {
		kept := make([]*entity.Document, 0, len(q.inventory))
		for _, d := range q.inventory {
			if d.Id != id {
				kept = append(kept, d)
			}
		}
		q.inventory = kept
		q.selection.Remove(id)
		q.revision++
	}
	q.mu.Unlock()

	q.notifier.Success(ctx, "Document supprimé", map[string]interface{}{"document_id": id})
	q.notifier.Emit(ctx, events.TypeDocumentRemoved, map[string]interface{}{"document_id": id})
	return nil
}

// Ask submits question against the current selection. Only one question
// may be in flight; a second call fails with ErrQueryInFlight.
func (q *QuerySession) Ask(ctx context.Context, question string) (*entity.QueryResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		err := clientutils.NewValidationError("Veuillez poser une question")
		q.notifier.Failure(ctx, "Erreur lors de la génération de la réponse", err)
		return nil, err
	}

	token, err := credential(q.session)
	if err != nil {
		return nil, err
	}

	q.mu.Lock()
	if q.state == entity.QueryStateSubmitting {
		q.mu.Unlock()
		return nil, ErrQueryInFlight
	}
	query := entity.QueryContext{
		Question:    question,
		DocumentIds: q.selection.IDs(),
		AgentType:   entity.ParseAgentType(string(q.agent.Type)),
	}
	gen := q.generation
	agentId := q.agent.Id
	q.state = entity.QueryStateSubmitting
	q.mu.Unlock()

	q.logger.Info("WORKSPACE", "Question submitted", map[string]interface{}{
		"agent_id":  agentId,
		"documents": len(query.DocumentIds),
	})

	result, err := q.queries.Ask(ctx, token, query)

	q.mu.Lock()
	if gen != q.generation {
		q.mu.Unlock()
		q.logger.Info("WORKSPACE", "Discarding answer for a previous agent", map[string]interface{}{"agent_id": agentId})
		return nil, ErrStaleResult
	}
	if err != nil {
		// FAILED is transient; the session is ready for another question.
		q.lastErr = err
		q.state = entity.QueryStateIdle
		q.mu.Unlock()

		expireOnUnauthorized(q.session, err)
		q.notifier.Failure(ctx, "Erreur lors de la génération de la réponse", err)
		q.notifier.Emit(ctx, events.TypeQuestionFailed, map[string]interface{}{"agent_id": agentId, "kind": string(clientutils.KindOf(err))})
		return nil, err
	}
	q.result = result
	q.lastErr = nil
	q.state = entity.QueryStateAnswered
	q.mu.Unlock()

	q.notifier.Success(ctx, "Réponse générée !", nil)
	q.notifier.Emit(ctx, events.TypeQuestionAnswered, map[string]interface{}{
		"agent_id": agentId,
		"csv":      result.Capabilities.CSV,
		"pdf":      result.Capabilities.PDF,
	})
	return result, nil
}

func (q *QuerySession) ExportCSV(ctx context.Context) (*entity.ExportFile, error) {
	return q.Export(ctx, entity.ExportCSV)
}

func (q *QuerySession) ExportPDF(ctx context.Context) (*entity.ExportFile, error) {
	return q.Export(ctx, entity.ExportPDF)
}

// Export regenerates the last answer in the given format from the exact
// question, selection and agent type that produced it, and saves the file.
// Only formats the backend flagged for that answer are offered.
func (q *QuerySession) Export(ctx context.Context, kind entity.ExportKind) (*entity.ExportFile, error) {
	q.mu.Lock()
	if q.result == nil || !q.result.Capabilities.Allows(kind) {
		q.mu.Unlock()
		err := clientutils.NewPreconditionError(fmt.Sprintf("L'export %s n'est pas disponible pour cette réponse", strings.ToUpper(string(kind))))
		q.notifier.Failure(ctx, "Erreur lors de l'export", err)
		return nil, err
	}
	if q.exporting[kind] {
		q.mu.Unlock()
		return nil, ErrExportInFlight
	}
	query := q.result.Context
	query.DocumentIds = append([]string(nil), query.DocumentIds...)
	gen := q.generation
	exporting := q.exporting
	exporting[kind] = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		delete(exporting, kind)
		q.mu.Unlock()
	}()

	token, err := credential(q.session)
	if err != nil {
		return nil, err
	}

	data, err := q.queries.Export(ctx, token, query, kind)

	q.mu.Lock()
	stale := gen != q.generation
	q.mu.Unlock()
	if stale {
		q.logger.Info("WORKSPACE", "Discarding export for a previous agent", map[string]interface{}{"kind": string(kind), "agent_type": query.AgentType.String()})
		return nil, ErrStaleResult
	}
	if err != nil {
		expireOnUnauthorized(q.session, err)
		q.notifier.Failure(ctx, "Erreur lors de l'export", err)
		return nil, err
	}

	filename := entity.ExportFilename(query.AgentType, kind, q.now())
	path, err := q.saver.Save(ctx, filename, data)
	if err != nil {
		q.notifier.Failure(ctx, "Erreur lors de l'enregistrement du fichier", err)
		return nil, err
	}

	q.logger.Info("WORKSPACE", "Export saved", map[string]interface{}{"kind": string(kind), "path": path, "size": len(data)})
	q.notifier.Success(ctx, fmt.Sprintf("Fichier %s téléchargé", filename), map[string]interface{}{"path": path})
	q.notifier.Emit(ctx, events.TypeExportSaved, map[string]interface{}{"kind": string(kind), "path": path})
	return &entity.ExportFile{Kind: kind, Filename: filename, Path: path, Size: len(data)}, nil
}
