package sse

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/katalogapp/katalog-server/internal/id"
)

// Client represents a connected SSE client.
type Client struct {
	ID          string
	ConnectedAt time.Time
	EventChan   chan Event
}

// Manager manages SSE connections and broadcasts events.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*Client
	events  chan Event
	logger  *slog.Logger

	heartbeatInterval time.Duration

	closedMu sync.RWMutex
	closed   bool
}

// NewManager creates a new SSE Manager.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		clients:           make(map[string]*Client),
		events:            make(chan Event, 64),
		logger:            logger,
		heartbeatInterval: 30 * time.Second,
	}
}

// Start runs the broadcast loop until the context is canceled.
// Call once at startup in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	ticker := time.NewTicker(m.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case event := <-m.events:
			m.broadcast(event)
		case <-ticker.C:
			m.broadcast(NewHeartbeatEvent())
		case <-ctx.Done():
			m.closeAllClients()
			return
		}
	}
}

// Emit queues an event for broadcast. Events are dropped when the
// queue is full or the manager has shut down; the stream is advisory
// and clients can always refetch.
func (m *Manager) Emit(event Event) {
	m.closedMu.RLock()
	defer m.closedMu.RUnlock()
	if m.closed {
		return
	}

	select {
	case m.events <- event:
	default:
		m.logger.Warn("SSE event queue full, dropping event", "type", event.Type)
	}
}

// Connect registers a new client.
func (m *Manager) Connect() *Client {
	client := &Client{
		ID:          id.MustGenerate("sse"),
		ConnectedAt: time.Now(),
		EventChan:   make(chan Event, 16),
	}

	m.mu.Lock()
	m.clients[client.ID] = client
	m.mu.Unlock()

	m.logger.Debug("SSE client connected", "client_id", client.ID)
	return client
}

// Disconnect removes a client and closes its channel.
func (m *Manager) Disconnect(clientID string) {
	m.mu.Lock()
	client, ok := m.clients[clientID]
	if ok {
		delete(m.clients, clientID)
	}
	m.mu.Unlock()

	if ok {
		close(client.EventChan)
		m.logger.Debug("SSE client disconnected", "client_id", clientID)
	}
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// broadcast delivers an event to every connected client. Slow clients
// with a full channel are skipped rather than blocked on.
func (m *Manager) broadcast(event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, client := range m.clients {
		select {
		case client.EventChan <- event:
		default:
			m.logger.Debug("SSE client channel full, skipping", "client_id", client.ID)
		}
	}
}

// closeAllClients disconnects everyone during shutdown.
func (m *Manager) closeAllClients() {
	m.closedMu.Lock()
	m.closed = true
	m.closedMu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, client := range m.clients {
		close(client.EventChan)
		delete(m.clients, id)
	}
}
