// Package transport defines the audit module's response shapes.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// EntryResponse is an audit log entry as shown in the admin panel.
type EntryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Action    string     `json:"action"`
	RideID    *uuid.UUID `json:"ride_id,omitempty"`
	RequestID *uuid.UUID `json:"request_id,omitempty"`
	Actor     string     `json:"actor,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
