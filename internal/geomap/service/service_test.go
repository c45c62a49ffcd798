package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"village_rides_backend/internal/geomap/engine"
	"village_rides_backend/platform/apperr"
	"village_rides_backend/platform/logger"

	"github.com/google/uuid"
)

type mapConfig struct{}

func (mapConfig) GetMapDefaultLat() float64  { return 42.8038 }
func (mapConfig) GetMapDefaultLng() float64  { return 23.8097 }
func (mapConfig) GetMapDefaultZoom() int     { return 13 }
func (mapConfig) GetMapFitPadding() int      { return 40 }
func (mapConfig) GetTileURLTemplate() string { return "https://tile.example/{z}/{x}/{y}.png" }
func (mapConfig) GetTileAttribution() string { return "© OpenStreetMap contributors" }

type stubRides struct {
	rides []engine.RideView
}

func (s stubRides) ActiveRides(ctx context.Context) ([]engine.RideView, error) {
	return s.rides, nil
}

type stubRequests struct {
	requests []engine.RequestView
}

func (s stubRequests) ActiveRequests(ctx context.Context) ([]engine.RequestView, error) {
	return s.requests, nil
}

type stubGeocoder struct {
	place engine.Place
	err   error
}

func (g stubGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (engine.Place, error) {
	return g.place, g.err
}

func ptr(v float64) *float64 { return &v }

func newTestService(t *testing.T, rides []engine.RideView, requests []engine.RequestView) *Service {
	t.Helper()
	log := logger.New("test")
	lookup := engine.NewGeoLookupClient(stubGeocoder{place: engine.Place{Village: "Осойца"}}, log)
	svc := New(mapConfig{}, stubRides{rides: rides}, stubRequests{requests: requests}, lookup, log)
	t.Cleanup(svc.Close)
	return svc
}

func TestSceneEmptyUsesDefaultViewport(t *testing.T) {
	svc := newTestService(t, nil, nil)

	resp, err := svc.Scene(context.Background())
	if err != nil {
		t.Fatalf("Scene: %v", err)
	}
	if resp.Viewport.FitBounds != nil {
		t.Fatal("expected no fit bounds without geometry")
	}
	if resp.Viewport.Center.Lat != 42.8038 || resp.Viewport.Zoom != 13 {
		t.Fatalf("unexpected default viewport: %+v", resp.Viewport)
	}
	if resp.Tiles.URLTemplate != "https://tile.example/{z}/{x}/{y}.png" {
		t.Fatalf("tiles = %+v", resp.Tiles)
	}
}

func TestSceneWithGeometryFitsBounds(t *testing.T) {
	rides := []engine.RideView{{
		Driver:       "Иван Петров",
		FromLocation: "Осойца",
		ToLocation:   "Ботевград",
		FromLat:      ptr(42.8038),
		FromLng:      ptr(23.8097),
		ToLat:        ptr(42.9061),
		ToLng:        ptr(23.7858),
		Date:         "2026-09-01",
		Time:         "07:30",
	}}
	svc := newTestService(t, rides, nil)

	resp, err := svc.Scene(context.Background())
	if err != nil {
		t.Fatalf("Scene: %v", err)
	}
	if resp.Viewport.FitBounds == nil {
		t.Fatal("expected fit bounds with geometry")
	}
	if resp.Viewport.PaddingPx != 40 {
		t.Fatalf("padding = %d", resp.Viewport.PaddingPx)
	}
	if len(resp.Rides.Lines) != 1 {
		t.Fatalf("expected 1 ride line, got %d", len(resp.Rides.Lines))
	}
}

func TestCreateSessionInitialState(t *testing.T) {
	svc := newTestService(t, nil, nil)

	state := svc.CreateSession()
	if state.ID == uuid.Nil {
		t.Fatal("expected a session id")
	}
	if state.Mode != engine.ModeFrom {
		t.Fatalf("initial mode = %q", state.Mode)
	}
	for name, marker := range state.Markers {
		if marker.Attached {
			t.Fatalf("marker %q attached before any click", name)
		}
	}
	for name, value := range state.Fields {
		if value != "" {
			t.Fatalf("field %q = %q before any click", name, value)
		}
	}
}

func TestSelectModeValidation(t *testing.T) {
	svc := newTestService(t, nil, nil)
	state := svc.CreateSession()

	if _, err := svc.SelectMode(state.ID, engine.CaptureMode("via")); apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.SelectMode(uuid.New(), engine.ModeTo); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}

	next, err := svc.SelectMode(state.ID, engine.ModeTo)
	if err != nil {
		t.Fatalf("SelectMode: %v", err)
	}
	if next.Mode != engine.ModeTo {
		t.Fatalf("mode = %q", next.Mode)
	}
}

func TestClickWritesCoordinateFields(t *testing.T) {
	svc := newTestService(t, nil, nil)
	created := svc.CreateSession()

	state, err := svc.Click(context.Background(), created.ID, engine.Point{Lat: 42.80381, Lng: 23.80970})
	if err != nil {
		t.Fatalf("Click: %v", err)
	}

	if state.Fields["offer_from_lat"] != "42.80381" || state.Fields["offer_from_lng"] != "23.8097" {
		t.Fatalf("offer coordinates not written: %v", state.Fields)
	}
	if state.Fields["request_from_lat"] != "42.80381" || state.Fields["request_from_lng"] != "23.8097" {
		t.Fatalf("request coordinates not written: %v", state.Fields)
	}
	marker := state.Markers[string(engine.ModeFrom)]
	if !marker.Attached {
		t.Fatal("from marker not attached after click")
	}
	if marker.Position.Lat != 42.80381 {
		t.Fatalf("marker position = %+v", marker.Position)
	}
}

func TestClickDestinationSkipsMissingRequestFields(t *testing.T) {
	svc := newTestService(t, nil, nil)
	created := svc.CreateSession()

	if _, err := svc.SelectMode(created.ID, engine.ModeTo); err != nil {
		t.Fatalf("SelectMode: %v", err)
	}
	state, err := svc.Click(context.Background(), created.ID, engine.Point{Lat: 42.9061, Lng: 23.7858})
	if err != nil {
		t.Fatalf("Click: %v", err)
	}

	if state.Fields["offer_to_lat"] != "42.9061" {
		t.Fatalf("offer_to_lat = %q", state.Fields["offer_to_lat"])
	}
	// The request form carries no destination coordinate fields; the write
	// is dropped rather than surfacing an error.
	if _, ok := state.Fields["request_to_lat"]; ok {
		t.Fatal("request_to_lat should not exist in session fields")
	}
}

func TestClickResolvesLabelAsynchronously(t *testing.T) {
	svc := newTestService(t, nil, nil)
	created := svc.CreateSession()

	if _, err := svc.Click(context.Background(), created.ID, engine.Point{Lat: 42.8038, Lng: 23.8097}); err != nil {
		t.Fatalf("Click: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		state, err := svc.SessionState(created.ID)
		if err != nil {
			t.Fatalf("SessionState: %v", err)
		}
		if state.Fields["offer_from_location"] == "Осойца" {
			if state.Fields["request_from_location"] != "Осойца" {
				t.Fatalf("request label = %q", state.Fields["request_from_location"])
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("label never resolved; fields: %v", state.Fields)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSessionStateUnknownID(t *testing.T) {
	svc := newTestService(t, nil, nil)
	if _, err := svc.SessionState(uuid.New()); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestSessionConcurrentRequests(t *testing.T) {
	svc := newTestService(t, nil, nil)
	created := svc.CreateSession()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				p := engine.Point{Lat: 42.8 + float64(n)*0.001, Lng: 23.8}
				if _, err := svc.Click(ctx, created.ID, p); err != nil {
					t.Errorf("Click: %v", err)
					return
				}
				mode := engine.ModeFrom
				if j%2 == 0 {
					mode = engine.ModeTo
				}
				if _, err := svc.SelectMode(created.ID, mode); err != nil {
					t.Errorf("SelectMode: %v", err)
					return
				}
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := svc.SessionState(created.ID); err != nil {
					t.Errorf("SessionState: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	// One deterministic click per mode so both markers are attached.
	for _, mode := range []engine.CaptureMode{engine.ModeFrom, engine.ModeTo} {
		if _, err := svc.SelectMode(created.ID, mode); err != nil {
			t.Fatalf("SelectMode: %v", err)
		}
		if _, err := svc.Click(ctx, created.ID, engine.Point{Lat: 42.81, Lng: 23.81}); err != nil {
			t.Fatalf("Click: %v", err)
		}
	}

	state, err := svc.SessionState(created.ID)
	if err != nil {
		t.Fatalf("SessionState: %v", err)
	}
	if !state.Mode.Valid() {
		t.Fatalf("mode = %q", state.Mode)
	}
	for name, marker := range state.Markers {
		if !marker.Attached {
			t.Fatalf("marker %q not attached after clicks in both modes", name)
		}
	}
}
