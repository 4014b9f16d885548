package service

import (
	"strconv"
	"strings"
	"time"

	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/pkg/logger"
	"applydi-client/internal/repository/contract"
)

const (
	storageKeyToken    = "token"
	storageKeyDarkMode = "darkMode"
)

// ISessionService is the Session Store. The credential survives restarts
// until logout or until the backend rejects it.
type ISessionService interface {
	Credential() (string, bool)
	SetCredential(token string) error
	Clear() error
	DarkMode() bool
	SetDarkMode(enabled bool) error
	Info() clientutils.TokenInfo
}

type sessionService struct {
	store  contract.KeyValueStore
	logger logger.ILogger
	now    func() time.Time
}

func NewSessionService(store contract.KeyValueStore, log logger.ILogger) ISessionService {
	return &sessionService{store: store, logger: log, now: time.Now}
}

// Credential reads the stored token. An expired JWT reads as absent.
func (s *sessionService) Credential() (string, bool) {
	token, ok := s.store.Get(storageKeyToken)
	if !ok || !clientutils.CredentialUsable(token, s.now()) {
		return "", false
	}
	return token, true
}

func (s *sessionService) SetCredential(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return clientutils.NewValidationError("credential must not be empty")
	}
	if err := s.store.Set(storageKeyToken, token); err != nil {
		return err
	}
	s.logger.Info("SESSION", "Credential stored", map[string]interface{}{"subject": clientutils.InspectToken(token).Subject})
	return nil
}

// Clear drops the credential. The theme preference is kept.
func (s *sessionService) Clear() error {
	if err := s.store.Delete(storageKeyToken); err != nil {
		return err
	}
	s.logger.Info("SESSION", "Credential cleared", nil)
	return nil
}

func (s *sessionService) DarkMode() bool {
	raw, ok := s.store.Get(storageKeyDarkMode)
	if !ok {
		return false
	}
	enabled, err := strconv.ParseBool(raw)
	return err == nil && enabled
}

func (s *sessionService) SetDarkMode(enabled bool) error {
	return s.store.Set(storageKeyDarkMode, strconv.FormatBool(enabled))
}

func (s *sessionService) Info() clientutils.TokenInfo {
	token, ok := s.Credential()
	if !ok {
		return clientutils.TokenInfo{}
	}
	return clientutils.InspectToken(token)
}
