package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/presence"
)

type Event string

const (
	EventOnlineUsersChanged Event = "OnlineUsersChanged"
	EventMaterialsIngested  Event = "MaterialsIngested"
)

type Message struct {
	Event Event `json:"event"`
	Data  any   `json:"data,omitempty"`
}

type Client struct {
	ID          uuid.UUID
	DisplayName string
	Outbound    chan Message
	done        chan struct{}
}

// Hub broadcasts server events to every connected SSE client and keeps the
// presence tracker in sync with connect/disconnect activity.
type Hub struct {
	mu      sync.RWMutex
	log     *logger.Logger
	tracker *presence.Tracker
	clients map[*Client]bool
}

func NewHub(baseLog *logger.Logger, tracker *presence.Tracker) *Hub {
	return &Hub{
		log:     baseLog.With("component", "SSEHub"),
		tracker: tracker,
		clients: make(map[*Client]bool),
	}
}

// Connect registers a new client and announces the presence change.
func (h *Hub) Connect(displayName string) *Client {
	client := &Client{
		ID:          uuid.New(),
		DisplayName: displayName,
		Outbound:    make(chan Message, 10),
		done:        make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	h.tracker.Join(client.ID, displayName)
	h.Broadcast(Message{Event: EventOnlineUsersChanged, Data: h.tracker.Snapshot()})

	h.log.Debug("SSE client connected", "client_id", client.ID, "display_name", displayName)
	return client
}

// Disconnect deregisters the client and announces the presence change. Safe
// to call once per client.
func (h *Hub) Disconnect(client *Client) {
	h.mu.Lock()
	if !h.clients[client] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	h.mu.Unlock()

	close(client.done)
	close(client.Outbound)

	h.tracker.Leave(client.ID)
	h.Broadcast(Message{Event: EventOnlineUsersChanged, Data: h.tracker.Snapshot()})

	h.log.Debug("SSE client disconnected", "client_id", client.ID)
}

func (h *Hub) Broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.Outbound <- msg:
		default:
			h.log.Warn("Dropping SSE message; outbound buffer full", "client_id", c.ID)
		}
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request, client *Client) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	ctx := r.Context()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			h.Disconnect(client)
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg, open := <-client.Outbound:
			if !open {
				return
			}
			payload, err := json.Marshal(msg)
			if err != nil {
				h.log.Warn("Failed to marshal SSE message", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, payload)
			flusher.Flush()
		}
	}
}
