package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event is one auth state change for an account.
type Event struct {
	AccountID string    `json:"account_id"`
	Type      string    `json:"type"`
	At        time.Time `json:"at"`
}

// Hub fans auth state changes out to websocket subscribers per account,
// mirrored over Redis pub/sub so every instance sees every change.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	AccountID string
	Send      chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(accountID string) *Client {
	client := &Client{
		AccountID: accountID,
		Send:      make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[accountID] == nil {
		h.clients[accountID] = map[*Client]struct{}{}
	}
	h.clients[accountID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if accountClients, ok := h.clients[client.AccountID]; ok {
		delete(accountClients, client)
		if len(accountClients) == 0 {
			delete(h.clients, client.AccountID)
		}
	}
	close(client.Send)
}

// BroadcastEvent publishes an auth state change for accountID.
func (h *Hub) BroadcastEvent(accountID, eventType string) {
	payload, err := json.Marshal(Event{
		AccountID: accountID,
		Type:      eventType,
		At:        time.Now().UTC(),
	})
	if err != nil {
		log.Printf("event marshal error: %v", err)
		return
	}
	h.Broadcast(accountID, payload)
}

// Broadcast delivers payload to accountID's subscribers. With Redis attached
// the payload goes through pub/sub so remote instances deliver it too; the
// local delivery then happens in the subscriber loop, never twice.
func (h *Hub) Broadcast(accountID string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(accountID), payload).Err()
		if err == nil {
			return
		}
		log.Printf("redis publish error: %v", err)
	}

	h.deliver(accountID, payload)
}

func (h *Hub) deliver(accountID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[accountID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "auth:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliver(accountIDFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(accountID string) string {
	return "auth:" + accountID + ":events"
}

func accountIDFromChannel(ch string) string {
	// auth:{account}:events
	const prefix = "auth:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
