package websocket_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/smartcowork/cowork-gin/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_NotifyChangeReachesSubscribers(t *testing.T) {
	hub := websocket.NewHub()
	go hub.Run()

	events := hub.Subscribe()
	defer hub.Unsubscribe(events)

	hub.NotifyChange("requests", "insert")

	select {
	case payload := <-events:
		var event websocket.ChangeEvent
		require.NoError(t, json.Unmarshal(payload, &event))
		assert.Equal(t, "requests", event.Table)
		assert.Equal(t, "insert", event.Action)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := websocket.NewHub()
	go hub.Run()

	events := hub.Subscribe()
	hub.Unsubscribe(events)

	_, open := <-events
	assert.False(t, open)
}

func TestHub_ClientCountStartsAtZero(t *testing.T) {
	hub := websocket.NewHub()
	assert.Zero(t, hub.ClientCount())
}
