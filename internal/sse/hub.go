package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// EventType defines the SSE event name.
type EventType string

const (
	EventPurchaseCompleted EventType = "purchase.completed"
	EventModuleUninstalled EventType = "module.uninstalled"
)

// PurchaseEvent is the payload pushed to a user's SSE stream when their
// entitlements change.
type PurchaseEvent struct {
	Event     EventType `json:"event"`
	SessionID string    `json:"sessionId,omitempty"`
	ModuleIDs []string  `json:"moduleIds"`
	Timestamp time.Time `json:"timestamp"`
}

// Client represents one connected SSE stream.
type Client struct {
	ID     string
	UserID string
	Events chan []byte
}

// Hub manages SSE client connections. Events are scoped to a user: a
// client only receives events for the account it authenticated as.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a new client for the given user and returns it for
// streaming.
func (h *Hub) Register(clientID, userID string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &Client{
		ID:     clientID,
		UserID: userID,
		Events: make(chan []byte, 64),
	}
	h.clients[clientID] = c
	log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("SSE client connected")
	return c
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		close(c.Events)
		delete(h.clients, clientID)
		log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("SSE client disconnected")
	}
}

// Publish sends an event to every client of the given user.
// Non-blocking: drops the message if a client buffer is full.
func (h *Hub) Publish(userID string, event *PurchaseEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if c.UserID != userID {
			continue
		}
		select {
		case c.Events <- data:
		default:
			log.Warn().Str("client_id", c.ID).Msg("SSE client buffer full, dropping event")
		}
	}
}

// NotifyPurchaseCompleted publishes a purchase.completed event for the
// user.
func (h *Hub) NotifyPurchaseCompleted(userID, sessionID string, moduleIDs []string) {
	h.Publish(userID, &PurchaseEvent{
		Event:     EventPurchaseCompleted,
		SessionID: sessionID,
		ModuleIDs: moduleIDs,
		Timestamp: time.Now(),
	})
}

// NotifyModuleUninstalled publishes a module.uninstalled event for the
// user. moduleIDs carries the full removal set, cascaded add-ons included.
func (h *Hub) NotifyModuleUninstalled(userID string, moduleIDs []string) {
	h.Publish(userID, &PurchaseEvent{
		Event:     EventModuleUninstalled,
		ModuleIDs: moduleIDs,
		Timestamp: time.Now(),
	})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
