package service

import (
	"context"
	"strings"

	"applydi-client/internal/dto"
	"applydi-client/internal/entity"
	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/pkg/logger"
	"applydi-client/internal/repository/contract"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// IAgentService is the Agent Directory.
type IAgentService interface {
	List(ctx context.Context) ([]*entity.Agent, error)
	Create(ctx context.Context, name string, agentType string) (*entity.Agent, error)
	Delete(ctx context.Context, id string, confirmer Confirmer) error
	Resolve(id string, agents []*entity.Agent) (*entity.Agent, error)
}

type agentService struct {
	repo     contract.AgentRepository
	session  ISessionService
	notifier INotificationService
	logger   logger.ILogger
}

func NewAgentService(repo contract.AgentRepository, session ISessionService, notifier INotificationService, log logger.ILogger) IAgentService {
	return &agentService{
		repo:     repo,
		session:  session,
		notifier: notifier,
		logger:   log,
	}
}

func (s *agentService) List(ctx context.Context) ([]*entity.Agent, error) {
	token, err := credential(s.session)
	if err != nil {
		return nil, err
	}

	agents, err := s.repo.FindAll(ctx, token)
	if err != nil {
		expireOnUnauthorized(s.session, err)
		s.notifier.Failure(ctx, "Erreur lors du chargement des agents", err)
		return nil, err
	}
	return agents, nil
}

func (s *agentService) Create(ctx context.Context, name string, agentType string) (*entity.Agent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		err := clientutils.NewValidationError("Veuillez saisir un nom pour l'agent")
		s.notifier.Failure(ctx, "Erreur lors de la création de l'agent", err)
		return nil, err
	}

	req := &dto.CreateAgentRequest{Name: name, Type: entity.ParseAgentType(agentType).String()}
	if err := clientutils.ValidateRequest(req); err != nil {
		s.notifier.Failure(ctx, "Erreur lors de la création de l'agent", err)
		return nil, err
	}

	token, err := credential(s.session)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, token, req)
	if err != nil {
		expireOnUnauthorized(s.session, err)
		s.notifier.Failure(ctx, "Erreur lors de la création de l'agent", err)
		return nil, err
	}

	// Some backend versions acknowledge without the agent; find it by name.
	if created == nil {
		agents, err := s.repo.FindAll(ctx, token)
		if err != nil {
			expireOnUnauthorized(s.session, err)
			return nil, err
		}
		for i := len(agents) - 1; i >= 0; i-- {
			if agents[i].Name == name {
				created = agents[i]
				break
			}
		}
		if created == nil {
			return nil, clientutils.NewServerError(0, "created agent missing from listing")
		}
	}

	s.logger.Info("AGENT", "Agent created", map[string]interface{}{"agent_id": created.Id, "type": string(created.Type)})
	s.notifier.Success(ctx, "Agent créé avec succès !", map[string]interface{}{"agent_id": created.Id})
	return created, nil
}

func (s *agentService) Delete(ctx context.Context, id string, confirmer Confirmer) error {
	if confirmer == nil {
		return clientutils.NewPreconditionError("deleting an agent requires confirmation")
	}

	ok, err := confirmer.Confirm(ctx, "Êtes-vous sûr de vouloir supprimer cet agent ?")
	if err != nil {
		return err
	}
	if !ok {
		return clientutils.NewCancelledError("Suppression annulée")
	}

	token, err := credential(s.session)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, token, id); err != nil {
		expireOnUnauthorized(s.session, err)
		s.notifier.Failure(ctx, "Erreur lors de la suppression", err)
		return err
	}

	s.logger.Info("AGENT", "Agent deleted", map[string]interface{}{"agent_id": id})
	s.notifier.Success(ctx, "Agent supprimé", map[string]interface{}{"agent_id": id})
	return nil
}

// Resolve finds id in agents, tolerating numeric and string encodings.
func (s *agentService) Resolve(id string, agents []*entity.Agent) (*entity.Agent, error) {
	for _, a := range agents {
		if entity.SameID(a.Id, id) {
			return a, nil
		}
	}
	return nil, clientutils.NewNotFoundError("Agent introuvable")
}
