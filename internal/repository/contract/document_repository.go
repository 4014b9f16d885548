package contract

import (
	"context"
	"io"

	"applydi-client/internal/entity"
)

type DocumentUpload struct {
	Filename string
	Content  io.Reader
}

// DocumentRepository addresses either one agent's corpus (agentId set) or
// the general corpus (agentId nil). The two are separate listings.
type DocumentRepository interface {
	FindAll(ctx context.Context, token string, agentId *string) ([]*entity.Document, error)
	Upload(ctx context.Context, token string, upload DocumentUpload, agentId *string) (*entity.Document, error)
	Delete(ctx context.Context, token string, id string) error
}
