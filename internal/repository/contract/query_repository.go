package contract

import (
	"context"

	"applydi-client/internal/entity"
)

type QueryRepository interface {
	Ask(ctx context.Context, token string, q entity.QueryContext) (*entity.QueryResult, error)
	Export(ctx context.Context, token string, q entity.QueryContext, kind entity.ExportKind) ([]byte, error)
}
