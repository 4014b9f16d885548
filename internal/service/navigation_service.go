package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"applydi-client/internal/entity"
	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/pkg/logger"
	"applydi-client/internal/repository/contract"
	"applydi-client/pkg/events"
)

type Route string

const (
	RouteLogin     Route = "/login"
	RouteAgents    Route = "/agents"
	RouteWorkspace Route = "/chat"
)

// Destination is where the user lands after a navigation.
type Destination struct {
	Route   Route
	AgentId string
}

func (d Destination) String() string {
	if d.Route == RouteWorkspace && d.AgentId != "" {
		return string(RouteWorkspace) + "/" + url.PathEscape(d.AgentId)
	}
	return string(d.Route)
}

// INavigationService is the Navigation Controller: it turns a page context
// into either a fully loaded workspace or a redirect.
type INavigationService interface {
	Enter(ctx context.Context, pageContext string) (Destination, *QuerySession, error)
	Switch(ctx context.Context, qs *QuerySession, pageContext string) (Destination, error)
}

type navigationService struct {
	agents    IAgentService
	documents IDocumentService
	queries   contract.QueryRepository
	session   ISessionService
	saver     FileSaver
	notifier  INotificationService
	logger    logger.ILogger
	now       func() time.Time
}

func NewNavigationService(
	agents IAgentService,
	documents IDocumentService,
	queries contract.QueryRepository,
	session ISessionService,
	saver FileSaver,
	notifier INotificationService,
	log logger.ILogger,
) INavigationService {
	return &navigationService{
		agents:    agents,
		documents: documents,
		queries:   queries,
		session:   session,
		saver:     saver,
		notifier:  notifier,
		logger:    log,
		now:       time.Now,
	}
}

// ParseAgentID extracts the agent id from "/?agentId=7", "/chat/7", a full
// URL of either shape, or a bare "7". It returns "" when there is none.
func ParseAgentID(pageContext string) string {
	raw := strings.TrimSpace(pageContext)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	for _, key := range []string{"agentId", "agent_id"} {
		if v := strings.TrimSpace(u.Query().Get(key)); v != "" {
			return entity.CanonicalID(v)
		}
	}

	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	switch {
	case len(segments) >= 2 && segments[len(segments)-2] == "chat":
		id, err := url.PathUnescape(segments[len(segments)-1])
		if err != nil {
			return ""
		}
		return entity.CanonicalID(id)
	case len(segments) == 1 && !strings.HasPrefix(u.Path, "/") && u.Scheme == "" && u.RawQuery == "":
		switch segments[0] {
		case "agents", "login", "chat":
			return ""
		}
		return entity.CanonicalID(segments[0])
	}
	return ""
}

func (n *navigationService) Enter(ctx context.Context, pageContext string) (Destination, *QuerySession, error) {
	qs := newQuerySession(querySessionDeps{
		documents: n.documents,
		queries:   n.queries,
		session:   n.session,
		saver:     n.saver,
		notifier:  n.notifier,
		logger:    n.logger,
		now:       n.now,
	})

	dest, err := n.Switch(ctx, qs, pageContext)
	if dest.Route != RouteWorkspace {
		return dest, nil, err
	}
	return dest, qs, err
}

// Switch loads the agent named by pageContext into qs. On any failure qs
// keeps its previous content and the destination is a redirect.
func (n *navigationService) Switch(ctx context.Context, qs *QuerySession, pageContext string) (Destination, error) {
	if _, ok := n.session.Credential(); !ok {
		return n.redirect(ctx, Destination{Route: RouteLogin}, "no credential"), nil
	}

	agentId := ParseAgentID(pageContext)
	if agentId == "" {
		return n.redirect(ctx, Destination{Route: RouteAgents}, "no agent in page context"), nil
	}

	agent, docs, err := n.load(ctx, agentId)
	if err != nil {
		if clientutils.IsKind(err, clientutils.KindUnauthorized) {
			_ = n.session.Clear()
			return n.redirect(ctx, Destination{Route: RouteLogin}, "credential rejected"), err
		}
		return n.redirect(ctx, Destination{Route: RouteAgents}, err.Error()), err
	}

	qs.activate(ctx, agent, docs)
	return Destination{Route: RouteWorkspace, AgentId: agent.Id}, nil
}

// load runs the agents, resolve, documents cascade. Nothing is applied
// until all three succeeded.
func (n *navigationService) load(ctx context.Context, agentId string) (*entity.Agent, []*entity.Document, error) {
	agents, err := n.agents.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	agent, err := n.agents.Resolve(agentId, agents)
	if err != nil {
		n.notifier.Failure(ctx, "Agent introuvable", err)
		return nil, nil, err
	}

	docs, err := n.documents.List(ctx, &agent.Id)
	if err != nil {
		n.notifier.Failure(ctx, "Erreur lors du chargement des documents", err)
		return nil, nil, err
	}
	return agent, docs, nil
}

func (n *navigationService) redirect(ctx context.Context, dest Destination, reason string) Destination {
	n.logger.Info("NAVIGATION", "Redirecting", map[string]interface{}{"to": dest.String(), "reason": reason})
	n.notifier.Emit(ctx, events.TypeNavigationRedirect, map[string]interface{}{"to": dest.String(), "reason": reason})
	return dest
}
