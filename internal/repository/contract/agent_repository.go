package contract

import (
	"context"

	"applydi-client/internal/dto"
	"applydi-client/internal/entity"
)

type AgentRepository interface {
	FindAll(ctx context.Context, token string) ([]*entity.Agent, error)
	// Create returns nil when the backend acknowledges without echoing the agent.
	Create(ctx context.Context, token string, req *dto.CreateAgentRequest) (*entity.Agent, error)
	Delete(ctx context.Context, token string, id string) error
}
