package implementation

import (
	"context"
	"net/http"
	"net/url"

	"applydi-client/internal/dto"
	"applydi-client/internal/entity"
	"applydi-client/internal/mapper"
	"applydi-client/internal/repository/contract"
	"applydi-client/pkg/httpclient"
)

type agentRepository struct {
	client *httpclient.Client
	mapper *mapper.AgentMapper
}

func NewAgentRepository(client *httpclient.Client) contract.AgentRepository {
	return &agentRepository{client: client, mapper: mapper.NewAgentMapper()}
}

func (r *agentRepository) FindAll(ctx context.Context, token string) ([]*entity.Agent, error) {
	var res dto.GetAllAgentsResponse
	if err := r.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/agents",
		Token:  token,
	}, &res); err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(res.Agents), nil
}

func (r *agentRepository) Create(ctx context.Context, token string, req *dto.CreateAgentRequest) (*entity.Agent, error) {
	var res dto.CreateAgentResponse
	if err := r.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/agents",
		Token:  token,
		JSON:   req,
	}, &res); err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(res.Resolved()), nil
}

func (r *agentRepository) Delete(ctx context.Context, token string, id string) error {
	return r.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   "/agents/" + url.PathEscape(entity.CanonicalID(id)),
		Token:  token,
	}, nil)
}
