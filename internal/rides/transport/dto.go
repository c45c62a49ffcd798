// Package transport defines the rides module's request and response shapes.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// Ride type keys and their Bulgarian display labels.
const (
	RideTypeWork       = "work"
	RideTypeSchool     = "school"
	RideTypeHealthcare = "healthcare"
	RideTypeOther      = "other"
)

var rideTypeLabels = map[string]string{
	RideTypeWork:       "За работа",
	RideTypeSchool:     "За училище",
	RideTypeHealthcare: "За здраве/болница",
	RideTypeOther:      "Друг превоз",
}

// RideTypeLabel returns the display label for a ride type, falling back to
// the generic label for unknown keys.
func RideTypeLabel(rideType string) string {
	if label, ok := rideTypeLabels[rideType]; ok {
		return label
	}
	return rideTypeLabels[RideTypeOther]
}

// CreateRideRequest is the payload for publishing a ride offer. Coordinates
// are optional: listings created without the map keep them empty.
type CreateRideRequest struct {
	Driver       string   `json:"driver" form:"driver"`
	Phone        string   `json:"phone" form:"phone"`
	FromLocation string   `json:"from_location" form:"from_location"`
	ToLocation   string   `json:"to_location" form:"to_location"`
	Date         string   `json:"date" form:"date"`
	Time         string   `json:"time" form:"time"`
	Seats        int      `json:"seats" form:"seats"`
	RideType     string   `json:"ride_type" form:"ride_type"`
	FromLat      *float64 `json:"from_lat" form:"from_lat"`
	FromLng      *float64 `json:"from_lng" form:"from_lng"`
	ToLat        *float64 `json:"to_lat" form:"to_lat"`
	ToLng        *float64 `json:"to_lng" form:"to_lng"`
}

// SearchRidesRequest filters the public ride search.
type SearchRidesRequest struct {
	From     string `form:"from"`
	To       string `form:"to"`
	Date     string `form:"date"`
	RideType string `form:"type"`
}

// RideResponse is the public representation of a ride offer.
type RideResponse struct {
	ID            uuid.UUID `json:"id"`
	Driver        string    `json:"driver"`
	Phone         string    `json:"phone"`
	FromLocation  string    `json:"from_location"`
	ToLocation    string    `json:"to_location"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Seats         int       `json:"seats"`
	RideType      string    `json:"ride_type"`
	RideTypeLabel string    `json:"ride_type_label"`
	FromLat       *float64  `json:"from_lat,omitempty"`
	FromLng       *float64  `json:"from_lng,omitempty"`
	ToLat         *float64  `json:"to_lat,omitempty"`
	ToLng         *float64  `json:"to_lng,omitempty"`
	IsActive      bool      `json:"is_active"`
	IsFlagged     bool      `json:"is_flagged"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateRideResponse confirms a published offer.
type CreateRideResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}
