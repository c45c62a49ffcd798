package engine

import (
	"strings"
	"testing"
)

func completeRide() RideView {
	return RideView{
		Driver:       "Иван Петров",
		FromLocation: "Осойца",
		ToLocation:   "Ботевград",
		FromLat:      ptr(42.80), FromLng: ptr(23.81),
		ToLat: ptr(42.90), ToLng: ptr(23.79),
		Date:          "2026-09-01",
		Time:          "07:30",
		RideType:      "work",
		RideTypeLabel: "За работа",
		Phone:         "+359888123456",
	}
}

func TestRenderSkipsRidesWithIncompleteCoordinates(t *testing.T) {
	partial := completeRide()
	partial.ToLat = nil

	missing := completeRide()
	missing.FromLat, missing.FromLng, missing.ToLat, missing.ToLng = nil, nil, nil, nil

	scene := NewLayerRenderer().Render([]RideView{completeRide(), partial, missing}, nil)

	if len(scene.Rides.Lines) != 1 {
		t.Fatalf("expected 1 ride line, got %d", len(scene.Rides.Lines))
	}
}

func TestRenderSkipsRequestsWithoutOrigin(t *testing.T) {
	withOrigin := RequestView{Passenger: "Мария", FromLat: ptr(42.75), FromLng: ptr(23.85)}
	withoutOrigin := RequestView{Passenger: "Георги"}

	scene := NewLayerRenderer().Render(nil, []RequestView{withOrigin, withoutOrigin})

	if len(scene.Requests.Markers) != 1 {
		t.Fatalf("expected 1 request marker, got %d", len(scene.Requests.Markers))
	}
}

func TestRenderBoundsContainEveryPlottedPoint(t *testing.T) {
	ride := completeRide()
	request := RequestView{FromLat: ptr(42.60), FromLng: ptr(24.00)}

	scene := NewLayerRenderer().Render([]RideView{ride}, []RequestView{request})

	for _, p := range []Point{
		{Lat: *ride.FromLat, Lng: *ride.FromLng},
		{Lat: *ride.ToLat, Lng: *ride.ToLng},
		{Lat: *request.FromLat, Lng: *request.FromLng},
	} {
		if !scene.Bounds.Contains(p) {
			t.Fatalf("bounds %+v do not contain %+v", scene.Bounds, p)
		}
	}
}

func TestRenderRouteColorFollowsRideType(t *testing.T) {
	cases := map[string]string{
		"work":       "#2563eb",
		"school":     "#16a34a",
		"healthcare": "#dc2626",
		"other":      "#9333ea",
		"carpool":    "#6b7280",
		"":           "#6b7280",
	}

	for rideType, want := range cases {
		if got := RouteColor(rideType); got != want {
			t.Fatalf("RouteColor(%q) = %q, want %q", rideType, got, want)
		}
	}
}

func TestRenderPopupOmitsPhoneLinkWhenMissing(t *testing.T) {
	withPhone := completeRide()
	noPhone := completeRide()
	noPhone.Phone = ""

	scene := NewLayerRenderer().Render([]RideView{withPhone, noPhone}, nil)

	if !strings.Contains(scene.Rides.Lines[0].Popup, "tel:") {
		t.Fatal("expected tel: link in popup with phone")
	}
	if strings.Contains(scene.Rides.Lines[1].Popup, "tel:") {
		t.Fatal("expected no tel: link in popup without phone")
	}
}

func TestRenderRequestPopupShowsDestinationPlaceholder(t *testing.T) {
	request := RequestView{FromLat: ptr(42.75), FromLng: ptr(23.85)}

	scene := NewLayerRenderer().Render(nil, []RequestView{request})

	if !strings.Contains(scene.Requests.Markers[0].Popup, "Не е посочено") {
		t.Fatal("expected destination placeholder in popup")
	}
}

func TestRenderEscapesUserText(t *testing.T) {
	ride := completeRide()
	ride.Driver = `<script>alert("x")</script>`

	scene := NewLayerRenderer().Render([]RideView{ride}, nil)

	if strings.Contains(scene.Rides.Lines[0].Popup, "<script>") {
		t.Fatal("expected driver name to be HTML-escaped")
	}
}

func TestApplyFitsBoundsWhenGeometryExists(t *testing.T) {
	m := &fakeTileMap{}
	renderer := NewLayerRenderer()
	scene := renderer.Render([]RideView{completeRide()}, nil)

	defaults := Viewport{Center: Point{Lat: 42.8038, Lng: 23.8097}, Zoom: 13}
	renderer.Apply(&scene, m, defaults, 40)

	if len(m.overlays) != 2 {
		t.Fatalf("expected 2 overlays, got %d", len(m.overlays))
	}
	if m.fit == nil {
		t.Fatal("expected FitBounds call")
	}
	if m.fit.padding != 40 {
		t.Fatalf("expected padding 40, got %d", m.fit.padding)
	}
	if m.viewport != nil {
		t.Fatal("expected no SetView call when geometry exists")
	}
}

func TestApplyKeepsDefaultViewportWhenEmpty(t *testing.T) {
	m := &fakeTileMap{}
	renderer := NewLayerRenderer()
	scene := renderer.Render(nil, nil)

	defaults := Viewport{Center: Point{Lat: 42.8038, Lng: 23.8097}, Zoom: 13}
	renderer.Apply(&scene, m, defaults, 40)

	if m.fit != nil {
		t.Fatal("expected no FitBounds call for empty scene")
	}
	if m.viewport == nil {
		t.Fatal("expected SetView call for empty scene")
	}
	if m.viewport.Zoom != 13 || m.viewport.Center.Lat != 42.8038 {
		t.Fatalf("unexpected default viewport: %+v", m.viewport)
	}
}
