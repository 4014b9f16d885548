package service

import (
	"context"
	"testing"

	"applydi-client/internal/dto"
	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/testsupport/fakeapi"
	"applydi-client/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresCredential(t *testing.T) {
	h := newHarness(t)
	h.backend.AddUser(testUser, testPassword)

	require.NoError(t, h.auth.Login(context.Background(), &dto.LoginRequest{Username: " alice ", Password: testPassword}))

	_, ok := h.session.Credential()
	assert.True(t, ok)
	assert.Equal(t, testUser, h.session.Info().Subject)
	assert.Contains(t, h.recorder.messages(events.LevelSuccess), "Connexion réussie !")
	assert.Equal(t, 1, h.recorder.count(events.TypeSessionStarted))
}

func TestLoginWrongPassword(t *testing.T) {
	h := newHarness(t)
	h.backend.AddUser(testUser, testPassword)

	err := h.auth.Login(context.Background(), &dto.LoginRequest{Username: testUser, Password: "nope"})

	assert.True(t, clientutils.IsKind(err, clientutils.KindUnauthorized))
	_, ok := h.session.Credential()
	assert.False(t, ok)
	require.Len(t, h.recorder.messages(events.LevelError), 1)
	assert.Contains(t, h.recorder.messages(events.LevelError)[0], "Incorrect username or password")
}

func TestLoginValidatesBeforeCalling(t *testing.T) {
	h := newHarness(t)

	err := h.auth.Login(context.Background(), &dto.LoginRequest{Username: "  ", Password: "x"})

	assert.True(t, clientutils.IsKind(err, clientutils.KindValidation))
	assert.Equal(t, 0, h.backend.Calls(fakeapi.RouteLogin))
}

func TestRegister(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.auth.Register(context.Background(), &dto.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "pw"}))
	err := h.auth.Register(context.Background(), &dto.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "pw"})
	assert.Equal(t, "Username already registered", clientutils.UserMessage(err))

	err = h.auth.Register(context.Background(), &dto.RegisterRequest{Username: "carol", Email: "not-an-email", Password: "pw"})
	assert.True(t, clientutils.IsKind(err, clientutils.KindValidation))
	assert.Equal(t, 2, h.backend.Calls(fakeapi.RouteRegister))

	// registering does not sign in
	_, ok := h.session.Credential()
	assert.False(t, ok)
}

func TestLogoutKeepsTheme(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	require.NoError(t, h.session.SetDarkMode(true))

	require.NoError(t, h.auth.Logout(context.Background()))

	_, ok := h.session.Credential()
	assert.False(t, ok)
	assert.True(t, h.session.DarkMode())
	assert.Equal(t, 1, h.recorder.count(events.TypeSessionCleared))
}
