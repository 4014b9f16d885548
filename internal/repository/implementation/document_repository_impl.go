package implementation

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"applydi-client/internal/dto"
	"applydi-client/internal/entity"
	"applydi-client/internal/mapper"
	"applydi-client/internal/repository/contract"
	"applydi-client/pkg/httpclient"
)

type documentRepository struct {
	client *httpclient.Client
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(client *httpclient.Client) contract.DocumentRepository {
	return &documentRepository{client: client, mapper: mapper.NewDocumentMapper()}
}

func (r *documentRepository) FindAll(ctx context.Context, token string, agentId *string) ([]*entity.Document, error) {
	req := httpclient.Request{
		Method: http.MethodGet,
		Path:   "/user/documents",
		Token:  token,
	}
	if agentId != nil {
		req.Query = url.Values{"agent_id": {entity.CanonicalID(*agentId)}}
	}

	var res dto.GetAllDocumentsResponse
	if err := r.client.DoJSON(ctx, req, &res); err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(res.Documents), nil
}

func (r *documentRepository) Upload(ctx context.Context, token string, upload contract.DocumentUpload, agentId *string) (*entity.Document, error) {
	req := httpclient.Request{
		Method: http.MethodPost,
		Path:   "/upload",
		Token:  token,
		Multipart: &httpclient.Multipart{
			FileField: "file",
			FileName:  upload.Filename,
			File:      upload.Content,
		},
	}
	if agentId != nil {
		req.Path = "/upload-agent"
		req.Multipart.Fields = map[string]string{"agent_id": entity.CanonicalID(*agentId)}
	}

	var res dto.UploadDocumentResponse
	if err := r.client.DoJSON(ctx, req, &res); err != nil {
		return nil, err
	}
	if res.Filename == "" {
		res.Filename = upload.Filename
	}
	return r.mapper.FromUpload(&res, agentId, time.Now()), nil
}

func (r *documentRepository) Delete(ctx context.Context, token string, id string) error {
	return r.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   "/user/documents/" + url.PathEscape(entity.CanonicalID(id)),
		Token:  token,
	}, nil)
}
