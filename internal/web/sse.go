package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/howardmhl/TabletopAndBottoms/internal/coordinator"
)

// SSEClient represents a connected SSE client.
type SSEClient struct {
	ID      string
	Channel chan string
}

// SSEHub manages SSE connections and broadcasts coordinator events as JSON.
type SSEHub struct {
	clients map[*SSEClient]bool
	mu      sync.RWMutex
	log     *logrus.Logger
}

// NewSSEHub creates a new SSE hub.
func NewSSEHub(log *logrus.Logger) *SSEHub {
	return &SSEHub{
		clients: make(map[*SSEClient]bool),
		log:     log,
	}
}

// Run starts the SSE hub, processing events from the coordinator.
func (h *SSEHub) Run(events <-chan coordinator.Event) {
	h.log.Info("SSE hub started")
	for event := range events {
		h.broadcast(event)
	}
}

func (h *SSEHub) broadcast(event coordinator.Event) {
	name, ok := eventName(event)
	if !ok {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).Error("failed to marshal event")
		return
	}
	msg := fmt.Sprintf("event: %s\ndata: %s\n\n", name, payload)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Channel <- msg:
		default:
			// Client too slow, skip
			h.log.WithField("client", client.ID).Warn("dropping message for slow client")
		}
	}
}

// eventName maps an event to its SSE event type. Unknown events are not
// broadcast.
func eventName(e coordinator.Event) (string, bool) {
	switch e.(type) {
	case coordinator.SnapshotApplied:
		return "snapshot", true
	case coordinator.ReloadFailed:
		return "reload-failed", true
	case coordinator.SelectionChanged:
		return "selection", true
	default:
		return "", false
	}
}

// HandleConnection handles a new SSE connection.
func (h *SSEHub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	client := &SSEClient{
		ID:      fmt.Sprintf("%p", r),
		Channel: make(chan string, 10),
	}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	h.log.WithField("client", client.ID).Debug("SSE client connected")

	defer func() {
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
		close(client.Channel)
		h.log.WithField("client", client.ID).Debug("SSE client disconnected")
	}()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	// Initial keepalive so proxies open the stream
	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-client.Channel:
			if !ok {
				return
			}
			// Messages arrive pre-framed with event and data lines.
			fmt.Fprint(w, msg)
			flusher.Flush()
		}
	}
}
