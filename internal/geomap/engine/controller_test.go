package engine

import (
	"context"
	"testing"
	"time"
)

func testSettings() MapSettings {
	return MapSettings{
		Defaults:        Viewport{Center: Point{Lat: 42.8038, Lng: 23.8097}, Zoom: 13},
		FitPaddingPx:    40,
		TileURLTemplate: "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
		TileAttribution: "© OpenStreetMap contributors",
	}
}

func newTestController(m TileMap, doc FieldStore, geocoder Geocoder) *MapController {
	lookup := NewGeoLookupClient(geocoder, nil)
	return NewMapController(testSettings(), m, &fakeControls{}, doc, lookup, nil)
}

func TestControllerDisabledWithoutTileMap(t *testing.T) {
	c := newTestController(nil, fullDoc(), &fakeGeocoder{})

	if !c.Disabled() {
		t.Fatal("expected controller disabled without a map surface")
	}

	// All operations must be safe no-ops.
	c.Start(nil, nil)
	c.SelectMode(ModeTo)
	c.Click(context.Background(), Point{Lat: 42.8, Lng: 23.8})
	if c.Mode() != ModeFrom {
		t.Fatalf("disabled controller reported mode %q", c.Mode())
	}
}

func TestControllerDisabledWithoutFieldStore(t *testing.T) {
	c := newTestController(&fakeTileMap{}, nil, &fakeGeocoder{})

	if !c.Disabled() {
		t.Fatal("expected controller disabled without form fields")
	}
}

func TestControllerStartInstallsTilesAndViewport(t *testing.T) {
	m := &fakeTileMap{}
	c := newTestController(m, fullDoc(), &fakeGeocoder{})

	c.Start(nil, nil)

	if m.tileURL != testSettings().TileURLTemplate {
		t.Fatalf("tile layer URL = %q", m.tileURL)
	}
	if m.attribution == "" {
		t.Fatal("expected attribution on the tile layer")
	}
	if len(m.overlays) != 2 {
		t.Fatalf("expected 2 overlays, got %d", len(m.overlays))
	}
	if m.viewport == nil {
		t.Fatal("expected default viewport with no listings")
	}
}

type panickyTileMap struct {
	fakeTileMap
}

func (m *panickyTileMap) AddTileLayer(urlTemplate, attribution string) {
	panic("tile provider exploded")
}

func TestControllerStartRecoversFromPanic(t *testing.T) {
	c := newTestController(&panickyTileMap{}, fullDoc(), &fakeGeocoder{})

	// Must not propagate.
	c.Start(nil, nil)

	if c.Disabled() {
		t.Fatal("a failed start must not disable capture")
	}
}

// gatedGeocoder blocks lookups until released, so tests can observe the
// window between the synchronous coordinate write and the label write.
type gatedGeocoder struct {
	fakeGeocoder
	gate chan struct{}
}

func (g *gatedGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (Place, error) {
	<-g.gate
	return g.fakeGeocoder.ReverseGeocode(ctx, lat, lng)
}

func TestControllerClickWritesCoordinatesBeforeLabel(t *testing.T) {
	doc := fullDoc()
	geocoder := &gatedGeocoder{
		fakeGeocoder: fakeGeocoder{place: Place{Village: "Осойца"}},
		gate:         make(chan struct{}),
	}
	c := newTestController(&fakeTileMap{}, doc, geocoder)
	labelSet := doc.notifyOn("offer_from_location")

	c.Click(context.Background(), Point{Lat: 42.80381, Lng: 23.80970})

	// Coordinates are written synchronously, before Click returns.
	if got, _ := doc.Get("offer_from_lat"); got != "42.80381" {
		t.Fatalf("offer_from_lat = %q immediately after click", got)
	}
	if got, _ := doc.Get("request_from_lng"); got != "23.8097" {
		t.Fatalf("request_from_lng = %q immediately after click", got)
	}
	if got, _ := doc.Get("offer_from_location"); got != "" {
		t.Fatalf("label %q present before lookup completed", got)
	}

	close(geocoder.gate)
	select {
	case <-labelSet:
	case <-time.After(2 * time.Second):
		t.Fatal("label was never written")
	}
	if got, _ := doc.Get("offer_from_location"); got != "Осойца" {
		t.Fatalf("offer_from_location = %q, want %q", got, "Осойца")
	}
}

func TestControllerClickLabelFallsBackOnLookupFailure(t *testing.T) {
	doc := fullDoc()
	c := newTestController(&fakeTileMap{}, doc, &fakeGeocoder{err: context.DeadlineExceeded})
	labelSet := doc.notifyOn("request_from_location")

	c.Click(context.Background(), Point{Lat: 42.8, Lng: 23.8})

	select {
	case <-labelSet:
	case <-time.After(2 * time.Second):
		t.Fatal("fallback label was never written")
	}
	if got, _ := doc.Get("request_from_location"); got != "42.80000, 23.80000" {
		t.Fatalf("request_from_location = %q", got)
	}
}
