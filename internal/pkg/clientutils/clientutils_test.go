package clientutils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestCredentialUsable(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	valid := signed(t, jwt.MapClaims{"sub": "7", "exp": now.Add(time.Hour).Unix()})
	expired := signed(t, jwt.MapClaims{"sub": "7", "exp": now.Add(-time.Minute).Unix()})
	noExp := signed(t, jwt.MapClaims{"sub": "7"})

	assert.True(t, CredentialUsable(valid, now))
	assert.False(t, CredentialUsable(expired, now))
	assert.True(t, CredentialUsable(noExp, now))
	assert.True(t, CredentialUsable("opaque-session-token", now))
	assert.False(t, CredentialUsable("   ", now))
}

func TestInspectToken(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	info := InspectToken(signed(t, jwt.MapClaims{"sub": "42", "exp": exp.Unix()}))

	assert.True(t, info.IsJWT)
	assert.Equal(t, "42", info.Subject)
	require.NotNil(t, info.ExpiresAt)
	assert.True(t, exp.Equal(*info.ExpiresAt))

	fallback := InspectToken(signed(t, jwt.MapClaims{"user_id": "abc"}))
	assert.Equal(t, "abc", fallback.Subject)

	assert.False(t, InspectToken("not-a-jwt").IsJWT)
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, KindUnauthorized, FromStatus(http.StatusUnauthorized, "").Kind)
	assert.Equal(t, KindUnauthorized, FromStatus(http.StatusForbidden, "no").Kind)
	assert.Equal(t, KindNotFound, FromStatus(http.StatusNotFound, "Document not found").Kind)

	rejected := FromStatus(http.StatusBadRequest, "File type not supported")
	assert.Equal(t, KindServer, rejected.Kind)
	assert.Equal(t, "File type not supported", rejected.Message)
	assert.Equal(t, http.StatusBadRequest, rejected.Status)

	assert.Equal(t, "Internal Server Error", FromStatus(http.StatusInternalServerError, "").Message)
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("loading agents: %w", NewUnavailableError("backend unreachable", errors.New("dial tcp")))

	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.True(t, IsKind(err, KindUnavailable))
	assert.Equal(t, "backend unreachable", UserMessage(err))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

type sampleRequest struct {
	Name  string `validate:"required,notblank"`
	Email string `validate:"omitempty,email"`
	Type  string `validate:"oneof=sales marketing hr purchase"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Name: "Closer", Type: "sales"}))

	err := ValidateRequest(sampleRequest{Name: "   ", Type: "sales"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, "name must not be empty", UserMessage(err))

	err = ValidateRequest(sampleRequest{Name: "x", Email: "nope", Type: "sales"})
	assert.Equal(t, "email must be a valid email address", UserMessage(err))

	err = ValidateRequest(sampleRequest{Name: "x", Type: "legal"})
	assert.Equal(t, "type must be one of [sales marketing hr purchase]", UserMessage(err))
}
