package engine

import (
	"fmt"
	"html"
	"strings"

	"village_rides_backend/platform/phone"
)

// RideView is the renderer's read-only view of a published ride offer.
// Coordinate fields are nil when the listing was created without map capture.
type RideView struct {
	Driver        string
	FromLocation  string
	ToLocation    string
	FromLat       *float64
	FromLng       *float64
	ToLat         *float64
	ToLng         *float64
	Date          string
	Time          string
	RideType      string
	RideTypeLabel string
	Phone         string
}

// RequestView is the renderer's read-only view of a ride request. Only the
// origin coordinate is ever captured.
type RequestView struct {
	Passenger     string
	FromLocation  string
	ToLocation    string
	FromLat       *float64
	FromLng       *float64
	Date          string
	Time          string
	TimeFlexLabel string
	PeopleCount   int
	Note          string
	Phone         string
}

// Line is a route segment in an overlay group.
type Line struct {
	From   Point  `json:"from"`
	To     Point  `json:"to"`
	Color  string `json:"color"`
	Weight int    `json:"weight"`
	Popup  string `json:"popup"`
}

// CircleMarker is a point feature in an overlay group, styled to be
// distinguishable from ride lines.
type CircleMarker struct {
	At     Point  `json:"at"`
	Color  string `json:"color"`
	Radius int    `json:"radius"`
	Popup  string `json:"popup"`
}

// Overlay is an independently toggleable group of map features.
type Overlay struct {
	Name    string         `json:"name"`
	Lines   []Line         `json:"lines,omitempty"`
	Markers []CircleMarker `json:"markers,omitempty"`
}

// rideTypeColors maps a ride type to its route color. Unknown or missing
// types fall back to defaultRouteColor.
var rideTypeColors = map[string]string{
	"work":       "#2563eb",
	"school":     "#16a34a",
	"healthcare": "#dc2626",
	"other":      "#9333ea",
}

const (
	defaultRouteColor  = "#6b7280"
	requestMarkerColor = "#f59e0b"

	routeWeight         = 4
	requestMarkerRadius = 8

	missingDestination = "Не е посочено"
)

// RouteColor returns the palette color for a ride type.
func RouteColor(rideType string) string {
	if c, ok := rideTypeColors[rideType]; ok {
		return c
	}
	return defaultRouteColor
}

func ridePopupHTML(r RideView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<strong>%s</strong><br>", html.EscapeString(r.Driver))
	fmt.Fprintf(&b, "%s → %s<br>", html.EscapeString(r.FromLocation), html.EscapeString(r.ToLocation))
	fmt.Fprintf(&b, "%s %s · %s", html.EscapeString(r.Date), html.EscapeString(r.Time), html.EscapeString(r.RideTypeLabel))
	appendTelLink(&b, r.Phone)
	return b.String()
}

func requestPopupHTML(r RequestView) string {
	to := r.ToLocation
	if to == "" {
		to = missingDestination
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<strong>%s</strong><br>", html.EscapeString(r.Passenger))
	fmt.Fprintf(&b, "%s → %s<br>", html.EscapeString(r.FromLocation), html.EscapeString(to))
	fmt.Fprintf(&b, "%s %s", html.EscapeString(r.Date), html.EscapeString(r.Time))
	if r.TimeFlexLabel != "" {
		fmt.Fprintf(&b, " (%s)", html.EscapeString(r.TimeFlexLabel))
	}
	fmt.Fprintf(&b, "<br>Пътници: %d", r.PeopleCount)
	if r.Note != "" {
		fmt.Fprintf(&b, "<br><em>%s</em>", html.EscapeString(r.Note))
	}
	appendTelLink(&b, r.Phone)
	return b.String()
}

// appendTelLink adds a click-to-call link only when a phone number exists.
// No phone means no link element at all.
func appendTelLink(b *strings.Builder, rawPhone string) {
	if strings.TrimSpace(rawPhone) == "" {
		return
	}
	link := phone.TelLink(rawPhone)
	fmt.Fprintf(b, `<br><a href="%s">%s</a>`, link, html.EscapeString(phone.NormalizeE164(rawPhone)))
}
