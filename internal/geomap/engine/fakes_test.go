package engine

import (
	"context"
	"sync"
)

type fakeMarker struct {
	mu  sync.Mutex
	pos Point
}

func (m *fakeMarker) SetLatLng(p Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos = p
}

func (m *fakeMarker) Position() Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

type fitCall struct {
	bounds  Bounds
	padding int
}

type fakeTileMap struct {
	tileURL     string
	attribution string
	viewport    *Viewport
	fit         *fitCall
	overlays    []*Overlay
	created     []*fakeMarker
	added       []Marker
}

func (m *fakeTileMap) AddTileLayer(urlTemplate, attribution string) {
	m.tileURL = urlTemplate
	m.attribution = attribution
}

func (m *fakeTileMap) SetView(v Viewport) {
	m.viewport = &v
}

func (m *fakeTileMap) FitBounds(b Bounds, paddingPx int) {
	m.fit = &fitCall{bounds: b, padding: paddingPx}
}

func (m *fakeTileMap) AddOverlay(o *Overlay) {
	m.overlays = append(m.overlays, o)
}

func (m *fakeTileMap) NewMarker(p Point) Marker {
	marker := &fakeMarker{pos: p}
	m.created = append(m.created, marker)
	return marker
}

func (m *fakeTileMap) AddMarker(marker Marker) {
	m.added = append(m.added, marker)
}

type fakeControls struct {
	active  CaptureMode
	changes int
}

func (c *fakeControls) SetActive(mode CaptureMode) {
	c.active = mode
	c.changes++
}

// fakeDoc only accepts the field names it was created with, mirroring a page
// that lacks some form fields.
type fakeDoc struct {
	mu     sync.Mutex
	fields map[string]string
	wait   map[string]chan struct{}
}

func newFakeDoc(names ...string) *fakeDoc {
	fields := make(map[string]string, len(names))
	for _, name := range names {
		fields[name] = ""
	}
	return &fakeDoc{fields: fields, wait: make(map[string]chan struct{})}
}

func (d *fakeDoc) Set(name, value string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.fields[name]; !ok {
		return false
	}
	d.fields[name] = value
	if ch, ok := d.wait[name]; ok {
		close(ch)
		delete(d.wait, name)
	}
	return true
}

func (d *fakeDoc) Get(name string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	value, ok := d.fields[name]
	return value, ok
}

// notifyOn returns a channel closed on the next Set of the named field.
func (d *fakeDoc) notifyOn(name string) <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch := make(chan struct{})
	d.wait[name] = ch
	return ch
}

type fakeGeocoder struct {
	place Place
	err   error
}

func (g *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (Place, error) {
	if g.err != nil {
		return Place{}, g.err
	}
	return g.place, nil
}

func ptr(v float64) *float64 {
	return &v
}
