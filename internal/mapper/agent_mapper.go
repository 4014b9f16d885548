package mapper

import (
	"applydi-client/internal/dto"
	"applydi-client/internal/entity"
)

type AgentMapper struct{}

func NewAgentMapper() *AgentMapper {
	return &AgentMapper{}
}

func (m *AgentMapper) ToEntity(a *dto.AgentResponse) *entity.Agent {
	if a == nil {
		return nil
	}
	agentType := entity.ParseAgentType(a.Type)
	description := a.Description
	if description == "" {
		description = agentType.Info().Description
	}
	return &entity.Agent{
		Id:          entity.CanonicalID(a.Id.String()),
		Name:        a.Name,
		Type:        agentType,
		Description: description,
		CreatedAt:   parseTimestampPtr(a.CreatedAt),
	}
}

func (m *AgentMapper) ToEntities(list []dto.AgentResponse) []*entity.Agent {
	result := make([]*entity.Agent, 0, len(list))
	for i := range list {
		result = append(result, m.ToEntity(&list[i]))
	}
	return result
}
