package handler

import (
	"bytes"
	"context"
	"testing"

	"applydi-client/internal/pkg/logger"
	"applydi-client/pkg/events"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendersNotifications(t *testing.T) {
	color.NoColor = true
	out := &bytes.Buffer{}
	h := NewNotificationHandler(out, nil, logger.NewNopLogger())

	bus := events.NewBus()
	defer bus.Close()
	require.NoError(t, h.Start(context.Background(), bus))

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, events.Notification(events.LevelSuccess, "Agent créé avec succès !", nil)))
	require.NoError(t, bus.Publish(ctx, events.Notification(events.LevelError, "Erreur lors de la suppression", nil)))
	require.NoError(t, bus.Publish(ctx, events.Notification(events.LevelInfo, "2 documents prêts", nil)))
	require.NoError(t, bus.Publish(ctx, events.NewEvent(events.TypeAgentActivated, map[string]interface{}{"agent_id": "1"})))

	assert.Equal(t, "✓ Agent créé avec succès !\n✗ Erreur lors de la suppression\n• 2 documents prêts\n", out.String())
}

func TestDarkModeStillPrintsText(t *testing.T) {
	color.NoColor = true
	out := &bytes.Buffer{}
	h := NewNotificationHandler(out, func() bool { return true }, logger.NewNopLogger())

	h.Handle(events.Envelope{Type: events.TypeNotification, Payload: map[string]interface{}{"level": "success", "message": "ok"}})
	h.Printf("%d agents\n", 3)

	assert.Equal(t, "✓ ok\n3 agents\n", out.String())
}
