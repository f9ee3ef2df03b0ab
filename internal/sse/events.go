// Package sse streams catalog lifecycle events to connected clients.
// A browser showing the catalog subscribes here so a source reload
// (file watch or POST /reload) can tell it to refetch its view.
package sse

import "time"

// EventType represents the type of SSE event.
type EventType string

const (
	// EventCatalogReloaded fires after the canonical dataset was swapped.
	EventCatalogReloaded EventType = "catalog.reloaded"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event is one message on the stream.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// CatalogReloadedData describes the dataset that replaced the old one.
type CatalogReloadedData struct {
	Total       int `json:"total"`
	Rejected    int `json:"rejected"`
	ParseErrors int `json:"parse_errors"`
}

// NewCatalogReloadedEvent builds the reload notification.
func NewCatalogReloadedEvent(total, rejected, parseErrors int) Event {
	return Event{
		Type:      EventCatalogReloaded,
		Timestamp: time.Now(),
		Data: CatalogReloadedData{
			Total:       total,
			Rejected:    rejected,
			ParseErrors: parseErrors,
		},
	}
}

// NewHeartbeatEvent builds a keepalive event.
func NewHeartbeatEvent() Event {
	return Event{Type: EventHeartbeat, Timestamp: time.Now()}
}
