// Package transport defines the requests module's request and response shapes.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// Request statuses.
const (
	StatusOpen      = "open"
	StatusFulfilled = "fulfilled"
)

// Time flexibility keys and their Bulgarian display labels.
const (
	TimeFlex30m       = "flex_30m"
	TimeFlex1h        = "flex_1h"
	TimeFlexMorning   = "morning"
	TimeFlexAfternoon = "afternoon"
)

var timeFlexLabels = map[string]string{
	TimeFlex30m:       "± 30 мин",
	TimeFlex1h:        "± 1 час",
	TimeFlexMorning:   "По-скоро сутрин",
	TimeFlexAfternoon: "По-скоро следобед",
}

// TimeFlexLabel returns the display label for a flexibility key, or "" for
// unknown keys.
func TimeFlexLabel(timeFlex string) string {
	return timeFlexLabels[timeFlex]
}

// ValidTimeFlex reports whether the key is one of the selectable options.
func ValidTimeFlex(timeFlex string) bool {
	_, ok := timeFlexLabels[timeFlex]
	return ok
}

// CreateRequestRequest is the payload for publishing a ride request. Only the
// origin coordinate is captured by the map; destination coordinates are kept
// for listings imported with full geometry.
type CreateRequestRequest struct {
	Passenger    string   `json:"passenger" form:"passenger"`
	Phone        string   `json:"phone" form:"phone"`
	FromLocation string   `json:"from_location" form:"from_location"`
	ToLocation   string   `json:"to_location" form:"to_location"`
	Date         string   `json:"date" form:"date"`
	Time         string   `json:"time" form:"time"`
	TimeFlex     string   `json:"time_flex" form:"time_flex"`
	PeopleCount  int      `json:"people_count" form:"people_count"`
	Note         string   `json:"note" form:"note"`
	FromLat      *float64 `json:"from_lat" form:"from_lat"`
	FromLng      *float64 `json:"from_lng" form:"from_lng"`
	ToLat        *float64 `json:"to_lat" form:"to_lat"`
	ToLng        *float64 `json:"to_lng" form:"to_lng"`
}

// SearchRequestsRequest filters the public request search.
type SearchRequestsRequest struct {
	From   string `form:"from"`
	To     string `form:"to"`
	Date   string `form:"date"`
	Status string `form:"status"`
}

// RequestResponse is the public representation of a ride request.
type RequestResponse struct {
	ID            uuid.UUID `json:"id"`
	Passenger     string    `json:"passenger"`
	Phone         string    `json:"phone"`
	FromLocation  string    `json:"from_location"`
	ToLocation    string    `json:"to_location"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	TimeFlex      string    `json:"time_flex"`
	TimeFlexLabel string    `json:"time_flex_label"`
	PeopleCount   int       `json:"people_count"`
	Note          string    `json:"note,omitempty"`
	FromLat       *float64  `json:"from_lat,omitempty"`
	FromLng       *float64  `json:"from_lng,omitempty"`
	ToLat         *float64  `json:"to_lat,omitempty"`
	ToLng         *float64  `json:"to_lng,omitempty"`
	Status        string    `json:"status"`
	IsActive      bool      `json:"is_active"`
	IsFlagged     bool      `json:"is_flagged"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateRequestResponse confirms a published request.
type CreateRequestResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}
