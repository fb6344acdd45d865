package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-code-debugger/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel is the Redis pub/sub channel used to reach clients that
// are connected to another instance.
const clusterChannel = "cluster_events"

type Hub struct {
	// Registered clients map: ClientID -> list of connections (multi-tab)
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// Identifies this instance on the cluster channel so it can skip
	// messages it published itself.
	instanceID string

	logger logger.ILogger
}

// clusterEnvelope is the wire format on the Redis cluster channel.
type clusterEnvelope struct {
	Origin         string          `json:"origin"`
	TargetClientID string          `json:"target_client_id"`
	Message        json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run owns the client map and the lifecycle of every Send channel. A
// channel is closed exactly once, here, when its client unregisters.
func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ClientID] = append(h.clients[client.ClientID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.ClientID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.ClientID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.ClientID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.ClientID]) == 0 {
					delete(h.clients, client.ClientID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"client_id": client.ClientID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers an event to every connection of one client, on this
// instance directly and on other instances via Redis.
func (h *Hub) Send(clientID string, eventType string, data interface{}) {
	payload, _ := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": data,
	})

	h.deliverLocal(clientID, payload)

	// Other instances may hold connections for the same client
	if h.rdb != nil {
		envelope, _ := json.Marshal(clusterEnvelope{
			Origin:         h.instanceID,
			TargetClientID: clientID,
			Message:        payload,
		})
		h.rdb.Publish(context.Background(), clusterChannel, envelope)
	}
}

// deliverLocal pushes a payload to this instance's connections for the
// client. A connection with a full buffer is handed to unregister; Run
// does the close, never this path.
func (h *Hub) deliverLocal(clientID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[clientID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"client_id": clientID})
			h.unregister <- client
		}
	}
}

// handleClusterMessage processes one envelope from the Redis channel.
// Reports whether it was delivered locally (self-originated and malformed
// envelopes are skipped).
func (h *Hub) handleClusterMessage(raw string) bool {
	var envelope clusterEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		log.Printf("Redis msg parse error: %v", err)
		return false
	}

	// Local connections already got this payload when Send published it
	if envelope.Origin == h.instanceID {
		return false
	}

	h.deliverLocal(envelope.TargetClientID, envelope.Message)
	return true
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.handleClusterMessage(msg.Payload)
	}
}
