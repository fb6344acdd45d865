package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func waitRegistered(t *testing.T, hub *Hub, clientID string, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[clientID]) == want
	}, time.Second, 5*time.Millisecond)
}

func TestSendDropsStalledConnectionWithoutPanic(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	// A connection that never reads: buffer of one fills immediately
	stalled := &Client{Hub: hub, ClientID: "client-1", Send: make(chan []byte, 1)}
	hub.register <- stalled
	waitRegistered(t, hub, "client-1", 1)

	hub.Send("client-1", "analysis.stored", map[string]interface{}{"n": 1})
	hub.Send("client-1", "analysis.stored", map[string]interface{}{"n": 2})

	waitRegistered(t, hub, "client-1", 0)

	// Sending to a departed client must be a no-op
	hub.Send("client-1", "analysis.stored", map[string]interface{}{"n": 3})

	// The channel still holds the delivered payload and was closed once
	_, ok := <-stalled.Send
	require.True(t, ok)
	_, ok = <-stalled.Send
	assert.False(t, ok, "channel must be closed after unregister")
}

func TestSendReachesEveryConnectionOfClient(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	first := &Client{Hub: hub, ClientID: "client-1", Send: make(chan []byte, 4)}
	second := &Client{Hub: hub, ClientID: "client-1", Send: make(chan []byte, 4)}
	other := &Client{Hub: hub, ClientID: "client-2", Send: make(chan []byte, 4)}
	hub.register <- first
	hub.register <- second
	hub.register <- other
	waitRegistered(t, hub, "client-1", 2)
	waitRegistered(t, hub, "client-2", 1)

	hub.Send("client-1", "analysis.stored", map[string]interface{}{"report_id": "r1"})

	assert.Len(t, first.Send, 1)
	assert.Len(t, second.Send, 1)
	assert.Empty(t, other.Send, "events are scoped to one client")

	payload := <-first.Send
	assert.Contains(t, string(payload), `"type":"analysis.stored"`)
}

func TestClusterMessageSkipsSelfOrigin(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	client := &Client{Hub: hub, ClientID: "client-1", Send: make(chan []byte, 4)}
	hub.register <- client
	waitRegistered(t, hub, "client-1", 1)

	message := json.RawMessage(`{"type":"analysis.stored","data":{}}`)

	// Local connections were already served when Send published this
	own, err := json.Marshal(clusterEnvelope{
		Origin:         hub.instanceID,
		TargetClientID: "client-1",
		Message:        message,
	})
	require.NoError(t, err)
	assert.False(t, hub.handleClusterMessage(string(own)))
	assert.Empty(t, client.Send)

	remote, err := json.Marshal(clusterEnvelope{
		Origin:         "some-other-instance",
		TargetClientID: "client-1",
		Message:        message,
	})
	require.NoError(t, err)
	assert.True(t, hub.handleClusterMessage(string(remote)))
	require.Len(t, client.Send, 1)
	assert.JSONEq(t, string(message), string(<-client.Send))

	assert.False(t, hub.handleClusterMessage("not json"))
}
