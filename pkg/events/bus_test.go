package events

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversBeforePublishReturns(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var mu sync.Mutex
	var got []Envelope
	require.NoError(t, bus.Subscribe(context.Background(), func(e Envelope) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	}))

	require.NoError(t, bus.Publish(context.Background(), Notification(LevelSuccess, "Agent créé", map[string]interface{}{"agent_id": "3"})))
	require.NoError(t, bus.Publish(context.Background(), NewEvent(TypeInventoryLoaded, map[string]interface{}{"count": 2})))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, TypeNotification, got[0].Type)
	assert.Equal(t, "Agent créé", got[0].String("message"))
	assert.Equal(t, LevelSuccess, got[0].String("level"))
	assert.Equal(t, "3", got[0].String("agent_id"))
	assert.NotEmpty(t, got[0].Id)
	assert.Equal(t, TypeInventoryLoaded, got[1].Type)
	assert.Equal(t, "2", got[1].String("count"))
	assert.Equal(t, "", got[1].String("missing"))
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	assert.NoError(t, bus.Publish(context.Background(), NewEvent(TypeSessionCleared, nil)))
}
