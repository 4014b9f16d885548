package contract

import (
	"context"

	"applydi-client/internal/dto"
)

type AuthRepository interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) error
}
