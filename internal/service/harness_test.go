package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"applydi-client/internal/pkg/logger"
	"applydi-client/internal/repository/contract"
	"applydi-client/internal/repository/implementation"
	"applydi-client/internal/repository/memory"
	"applydi-client/internal/testsupport/fakeapi"
	"applydi-client/pkg/events"
	"applydi-client/pkg/httpclient"

	"github.com/stretchr/testify/require"
)

const (
	testUser     = "alice"
	testPassword = "s3cret"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(ctx context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) messages(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		if e.EventType() == events.TypeNotification && e.Payload()["level"] == level {
			out = append(out, e.Payload()["message"].(string))
		}
	}
	return out
}

func (r *recorder) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.EventType() == eventType {
			n++
		}
	}
	return n
}

type harness struct {
	backend   *fakeapi.Backend
	store     contract.KeyValueStore
	session   ISessionService
	notifier  INotificationService
	auth      IAuthService
	agents    IAgentService
	documents IDocumentService
	queries   contract.QueryRepository
	nav       INavigationService
	recorder  *recorder
	exportDir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	backend := fakeapi.New()
	client := httpclient.New("http://fakeapi.local", httpclient.WithDoer(backend.Doer()))
	store, err := memory.NewStorageRepository("")
	require.NoError(t, err)

	log := logger.NewNopLogger()
	rec := &recorder{}
	notifier := NewNotificationService(rec, log)
	session := NewSessionService(store, log)
	agents := NewAgentService(implementation.NewAgentRepository(client), session, notifier, log)
	documents := NewDocumentService(implementation.NewDocumentRepository(client), session, log)
	queries := implementation.NewQueryRepository(client)
	exportDir := t.TempDir()

	return &harness{
		backend:   backend,
		store:     store,
		session:   session,
		notifier:  notifier,
		auth:      NewAuthService(implementation.NewAuthRepository(client), session, notifier, log),
		agents:    agents,
		documents: documents,
		queries:   queries,
		nav:       NewNavigationService(agents, documents, queries, session, NewDirectorySaver(exportDir), notifier, log),
		recorder:  rec,
		exportDir: exportDir,
	}
}

// signIn registers testUser on the backend and stores its credential.
func (h *harness) signIn(t *testing.T) {
	t.Helper()
	require.NoError(t, h.session.SetCredential(h.backend.AddUser(testUser, testPassword)))
}

// workspace enters the workspace of a fresh agent holding the given files.
func (h *harness) workspace(t *testing.T, agentType string, files ...string) (*QuerySession, []string) {
	t.Helper()
	agentId := h.backend.SeedAgent(testUser, "Closer", agentType)
	var docIds []string
	for _, f := range files {
		docIds = append(docIds, h.backend.SeedDocument(testUser, f, agentId))
	}

	dest, qs, err := h.nav.Enter(context.Background(), "/chat/"+agentId)
	require.NoError(t, err)
	require.Equal(t, RouteWorkspace, dest.Route)
	require.NotNil(t, qs)
	qs.now = func() time.Time { return time.Date(2026, 10, 18, 9, 5, 3, 0, time.UTC) }
	return qs, docIds
}
