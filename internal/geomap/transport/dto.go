// Package transport defines the geomap module's request and response shapes.
package transport

import (
	"village_rides_backend/internal/geomap/engine"

	"github.com/google/uuid"
)

// TileLayer describes the basemap the front end should load.
type TileLayer struct {
	URLTemplate string `json:"urlTemplate"`
	Attribution string `json:"attribution"`
}

// ViewportDecision tells the front end how to position the map: fit the
// provided bounds when geometry exists, otherwise use the default center and
// zoom.
type ViewportDecision struct {
	Center    engine.Point   `json:"center"`
	Zoom      int            `json:"zoom"`
	FitBounds *engine.Bounds `json:"fitBounds,omitempty"`
	PaddingPx int            `json:"paddingPx,omitempty"`
}

// SceneResponse is the rendered map scene.
type SceneResponse struct {
	Rides    engine.Overlay   `json:"rides"`
	Requests engine.Overlay   `json:"requests"`
	Tiles    TileLayer        `json:"tiles"`
	Viewport ViewportDecision `json:"viewport"`
}

// ReverseGeocodeRequest carries the coordinate to resolve. Pointers so that
// latitude or longitude 0, both valid coordinates, are distinguishable from
// an absent parameter.
type ReverseGeocodeRequest struct {
	Lat *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lng *float64 `form:"lng" binding:"required,min=-180,max=180"`
}

// ReverseGeocodeResponse carries the resolved display label.
type ReverseGeocodeResponse struct {
	Label string `json:"label"`
}

// SelectModeRequest switches a session's capture mode.
type SelectModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=from to"`
}

// ClickRequest records a map click in a session. Pointers for the same
// reason as ReverseGeocodeRequest: 0 is a valid coordinate.
type ClickRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng *float64 `json:"lng" validate:"required,min=-180,max=180"`
}

// MarkerState reports a placement marker's position and whether it has been
// attached to the map yet.
type MarkerState struct {
	Position engine.Point `json:"position"`
	Attached bool         `json:"attached"`
}

// SessionState is the full state of a capture session.
type SessionState struct {
	ID      uuid.UUID              `json:"id"`
	Mode    engine.CaptureMode     `json:"mode"`
	Markers map[string]MarkerState `json:"markers"`
	Fields  map[string]string      `json:"fields"`
}
