// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"village_rides_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Listing Domain Events
// =============================================================================

// RideOffered is published when a driver publishes a new ride offer.
type RideOffered struct {
	BaseEvent
	RideID       uuid.UUID `json:"rideId"`
	Driver       string    `json:"driver"`
	FromLocation string    `json:"fromLocation"`
	ToLocation   string    `json:"toLocation"`
	Date         string    `json:"date"`
}

func (e RideOffered) EventName() string { return "rides.ride.offered" }

// RideRequested is published when a passenger publishes a new ride request.
type RideRequested struct {
	BaseEvent
	RequestID    uuid.UUID `json:"requestId"`
	Passenger    string    `json:"passenger"`
	FromLocation string    `json:"fromLocation"`
	ToLocation   string    `json:"toLocation"`
	Date         string    `json:"date"`
}

func (e RideRequested) EventName() string { return "requests.ride.requested" }

// =============================================================================
// Moderation Domain Events
// =============================================================================

// ListingKind identifies which listing table a moderation event refers to.
type ListingKind string

const (
	ListingKindRide    ListingKind = "ride"
	ListingKindRequest ListingKind = "request"
)

// ListingDeactivated is published when an admin or the expiry worker
// deactivates a listing.
type ListingDeactivated struct {
	BaseEvent
	Kind      ListingKind `json:"kind"`
	ListingID uuid.UUID   `json:"listingId"`
	Actor     string      `json:"actor"`
}

func (e ListingDeactivated) EventName() string { return "moderation.listing.deactivated" }

// ListingFlagged is published when an admin flags or unflags a listing.
type ListingFlagged struct {
	BaseEvent
	Kind      ListingKind `json:"kind"`
	ListingID uuid.UUID   `json:"listingId"`
	Actor     string      `json:"actor"`
	Flagged   bool        `json:"flagged"`
}

func (e ListingFlagged) EventName() string { return "moderation.listing.flagged" }

// =============================================================================
// Auth Domain Events
// =============================================================================

// AdminLoggedIn is published on a successful admin login.
type AdminLoggedIn struct {
	BaseEvent
	AdminID  uuid.UUID `json:"adminId"`
	Username string    `json:"username"`
}

func (e AdminLoggedIn) EventName() string { return "auth.admin.logged_in" }

// AdminLoggedOut is published when an admin ends their session.
type AdminLoggedOut struct {
	BaseEvent
	AdminID  uuid.UUID `json:"adminId"`
	Username string    `json:"username"`
}

func (e AdminLoggedOut) EventName() string { return "auth.admin.logged_out" }
