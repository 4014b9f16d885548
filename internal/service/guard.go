package service

import (
	"errors"

	"applydi-client/internal/pkg/clientutils"
)

var (
	ErrQueryInFlight  = errors.New("a question is already being answered")
	ErrExportInFlight = errors.New("an export of this format is already running")
	ErrStaleResult    = errors.New("result discarded: the active agent changed")
)

const msgSessionExpired = "Session expirée, veuillez vous reconnecter"

// credential returns the stored token or an UNAUTHORIZED error without
// touching the network.
func credential(session ISessionService) (string, error) {
	token, ok := session.Credential()
	if !ok {
		return "", clientutils.NewUnauthorizedError(msgSessionExpired)
	}
	return token, nil
}

// expireOnUnauthorized destroys the session once the backend has rejected
// the credential.
func expireOnUnauthorized(session ISessionService, err error) {
	if clientutils.IsKind(err, clientutils.KindUnauthorized) {
		_ = session.Clear()
	}
}
