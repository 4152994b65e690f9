package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"clinivoice-be/internal/dto"
	"clinivoice-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub fans transcript updates out to the clients watching each session.
type Hub struct {
	// Registered clients map: SessionID -> List of Clients (multi-viewer)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out; nil means local only.
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

const redisChannel = "transcript_events"

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Session has no more viewers", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

type livePayload struct {
	Type      string                          `json:"type"`
	SessionId uuid.UUID                       `json:"session_id"`
	Message   dto.ConversationMessageResponse `json:"message"`
}

// BroadcastMessage sends a newly appended message to every client watching
// the session, locally and (via Redis) on other instances.
func (h *Hub) BroadcastMessage(sessionId uuid.UUID, message dto.ConversationMessageResponse) {
	data, _ := json.Marshal(livePayload{
		Type:      "message",
		SessionId: sessionId,
		Message:   message,
	})

	h.sendLocal(sessionId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_session_id": sessionId.String(),
			"message":           json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), redisChannel, payload)
	}
}

func (h *Hub) sendLocal(sessionId uuid.UUID, data []byte) {
	h.mu.RLock()
	clients, found := h.clients[sessionId]
	h.mu.RUnlock()

	if !found {
		return
	}
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// The unregister branch in Run owns closing Send; closing it
			// here as well would close the channel twice.
			h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{"session_id": sessionId})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared channel and forwards messages
	// for sessions it has local viewers for.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetSessionID string          `json:"target_session_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		sid, err := uuid.Parse(payload.TargetSessionID)
		if err != nil {
			continue
		}
		h.sendLocal(sid, payload.Message)
	}
}
