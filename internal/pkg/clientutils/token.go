package clientutils

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can learn about a bearer credential without
// the signing key. The backend stays the only authority on validity.
type TokenInfo struct {
	Subject   string
	ExpiresAt *time.Time
	IsJWT     bool
}

// InspectToken decodes the claims of a JWT credential without verifying its
// signature. Opaque tokens come back with IsJWT=false.
func InspectToken(token string) TokenInfo {
	token = strings.TrimSpace(token)
	if token == "" {
		return TokenInfo{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}
	}

	info := TokenInfo{IsJWT: true}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if info.Subject == "" {
		if uid, ok := claims["user_id"].(string); ok {
			info.Subject = uid
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}
	return info
}

// CredentialUsable reports whether token may still be sent. Expired JWTs are
// unusable; opaque tokens are usable until the backend rejects them.
func CredentialUsable(token string, now time.Time) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}
	info := InspectToken(token)
	if info.ExpiresAt != nil && !now.Before(*info.ExpiresAt) {
		return false
	}
	return true
}
