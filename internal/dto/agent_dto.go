package dto

type AgentResponse struct {
	Id          FlexID `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type GetAllAgentsResponse struct {
	Agents []AgentResponse `json:"agents"`
}

type CreateAgentRequest struct {
	Name string `json:"name" validate:"required,notblank"`
	Type string `json:"type" validate:"required,oneof=sales marketing hr purchase"`
}

// CreateAgentResponse accepts both a bare agent object and one wrapped in
// an "agent" key.
type CreateAgentResponse struct {
	AgentResponse
	Agent *AgentResponse `json:"agent,omitempty"`
}

func (r *CreateAgentResponse) Resolved() *AgentResponse {
	if r.Agent != nil {
		return r.Agent
	}
	if r.AgentResponse.Id == "" {
		return nil
	}
	return &r.AgentResponse
}
