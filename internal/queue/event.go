// Package queue defines message payloads exchanged over the message broker.
package queue

// LayoutSavedEvent is published after a layout is successfully created or
// updated.  It carries enough for downstream consumers to log or trigger
// notifications without querying the primary database.
type LayoutSavedEvent struct {
	LayoutID    uint64 `json:"layout_id"`
	OwnerID     uint64 `json:"owner_id"`
	Name        string `json:"name"`
	Action      string `json:"action"` // "create" or "update"
	ObjectCount int    `json:"object_count"`
	SavedAt     string `json:"saved_at"`
}
