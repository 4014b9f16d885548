package service

import (
	"context"
	"strings"

	"applydi-client/internal/dto"
	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/pkg/logger"
	"applydi-client/internal/repository/contract"
	"applydi-client/pkg/events"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) error
	Register(ctx context.Context, req *dto.RegisterRequest) error
	Logout(ctx context.Context) error
}

type authService struct {
	repo     contract.AuthRepository
	session  ISessionService
	notifier INotificationService
	logger   logger.ILogger
}

func NewAuthService(repo contract.AuthRepository, session ISessionService, notifier INotificationService, log logger.ILogger) IAuthService {
	return &authService{
		repo:     repo,
		session:  session,
		notifier: notifier,
		logger:   log,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	if err := clientutils.ValidateRequest(req); err != nil {
		s.notifier.Failure(ctx, "Erreur de connexion", err)
		return err
	}

	res, err := s.repo.Login(ctx, req)
	if err != nil {
		s.logger.Warn("AUTH", "Login failed", map[string]interface{}{"username": req.Username, "error": err.Error()})
		s.notifier.Failure(ctx, "Erreur de connexion", err)
		return err
	}
	if err := s.session.SetCredential(res.AccessToken); err != nil {
		return err
	}

	s.logger.Info("AUTH", "Login succeeded", map[string]interface{}{"username": req.Username})
	s.notifier.Emit(ctx, events.TypeSessionStarted, map[string]interface{}{"username": req.Username})
	s.notifier.Success(ctx, "Connexion réussie !", nil)
	return nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := clientutils.ValidateRequest(req); err != nil {
		s.notifier.Failure(ctx, "Erreur lors de l'inscription", err)
		return err
	}

	if err := s.repo.Register(ctx, req); err != nil {
		s.logger.Warn("AUTH", "Registration failed", map[string]interface{}{"username": req.Username, "error": err.Error()})
		s.notifier.Failure(ctx, "Erreur lors de l'inscription", err)
		return err
	}

	s.logger.Info("AUTH", "Registration succeeded", map[string]interface{}{"username": req.Username})
	s.notifier.Success(ctx, "Inscription réussie ! Vous pouvez maintenant vous connecter.", nil)
	return nil
}

// Logout is local only; the backend keeps no session.
func (s *authService) Logout(ctx context.Context) error {
	if err := s.session.Clear(); err != nil {
		return err
	}
	s.notifier.Emit(ctx, events.TypeSessionCleared, nil)
	return nil
}
