package implementation

import (
	"context"
	"net/http"
	"time"

	"applydi-client/internal/dto"
	"applydi-client/internal/entity"
	"applydi-client/internal/mapper"
	"applydi-client/internal/repository/contract"
	"applydi-client/pkg/httpclient"
)

var exportPaths = map[entity.ExportKind]string{
	entity.ExportCSV: "/generate-csv",
	entity.ExportPDF: "/generate-pdf",
}

type queryRepository struct {
	client *httpclient.Client
	mapper *mapper.QueryMapper
}

func NewQueryRepository(client *httpclient.Client) contract.QueryRepository {
	return &queryRepository{client: client, mapper: mapper.NewQueryMapper()}
}

func (r *queryRepository) Ask(ctx context.Context, token string, q entity.QueryContext) (*entity.QueryResult, error) {
	var res dto.AskResponse
	if err := r.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/ask",
		Token:  token,
		JSON:   r.mapper.ToRequest(q),
	}, &res); err != nil {
		return nil, err
	}
	return r.mapper.ToResult(&res, q, time.Now()), nil
}

func (r *queryRepository) Export(ctx context.Context, token string, q entity.QueryContext, kind entity.ExportKind) ([]byte, error) {
	resp, err := r.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   exportPaths[kind],
		Token:  token,
		JSON:   r.mapper.ToRequest(q),
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
