package implementation

import (
	"context"
	"net/http"

	"applydi-client/internal/dto"
	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/repository/contract"
	"applydi-client/pkg/httpclient"
)

type authRepository struct {
	client *httpclient.Client
}

func NewAuthRepository(client *httpclient.Client) contract.AuthRepository {
	return &authRepository{client: client}
}

func (r *authRepository) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var res dto.LoginResponse
	if err := r.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/login",
		JSON:   req,
	}, &res); err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, clientutils.NewServerError(http.StatusOK, "login response carried no access token")
	}
	return &res, nil
}

func (r *authRepository) Register(ctx context.Context, req *dto.RegisterRequest) error {
	return r.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/register",
		JSON:   req,
	}, nil)
}
