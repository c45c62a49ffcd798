package service

import (
	"sync"
	"time"

	"village_rides_backend/internal/geomap/engine"

	"github.com/google/uuid"
)

// sessionMarker is an in-memory placement marker.
type sessionMarker struct {
	mu  sync.Mutex
	pos engine.Point
}

func (m *sessionMarker) SetLatLng(p engine.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pos = p
}

func (m *sessionMarker) Position() engine.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

// sessionMap realizes engine.TileMap for a capture session. It records the
// engine's drawing calls instead of painting tiles; the front end mirrors
// the same calls against a real map.
type sessionMap struct {
	mu       sync.Mutex
	viewport engine.Viewport
	fitted   bool
	bounds   engine.Bounds
	padding  int
	overlays []*engine.Overlay
	markers  []engine.Marker
}

func (s *sessionMap) AddTileLayer(urlTemplate, attribution string) {}

func (s *sessionMap) SetView(v engine.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = v
	s.fitted = false
}

func (s *sessionMap) FitBounds(b engine.Bounds, paddingPx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = b
	s.padding = paddingPx
	s.fitted = true
}

func (s *sessionMap) AddOverlay(o *engine.Overlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlays = append(s.overlays, o)
}

func (s *sessionMap) NewMarker(p engine.Point) engine.Marker {
	return &sessionMarker{pos: p}
}

func (s *sessionMap) AddMarker(m engine.Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers = append(s.markers, m)
}

// modeControls records the highlighted toggle so session state can report it.
type modeControls struct {
	mu     sync.Mutex
	active engine.CaptureMode
}

func (c *modeControls) SetActive(mode engine.CaptureMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = mode
}

func (c *modeControls) Active() engine.CaptureMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// formDoc is the session's field store. Only fields present on the page
// exist here; engine writes to anything else are dropped, mirroring the
// binder's silent-skip contract. Guarded because label writes arrive from
// lookup goroutines.
type formDoc struct {
	mu     sync.Mutex
	fields map[string]string
}

// sessionFieldNames lists the form fields the public page carries. The
// request form has a destination text field but no destination coordinate
// fields: requests are located by origin only.
var sessionFieldNames = []string{
	"offer_from_location", "offer_from_lat", "offer_from_lng",
	"offer_to_location", "offer_to_lat", "offer_to_lng",
	"request_from_location", "request_from_lat", "request_from_lng",
	"request_to_location",
}

func newFormDoc() *formDoc {
	fields := make(map[string]string, len(sessionFieldNames))
	for _, name := range sessionFieldNames {
		fields[name] = ""
	}
	return &formDoc{fields: fields}
}

func (d *formDoc) Set(name, value string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.fields[name]; !ok {
		return false
	}
	d.fields[name] = value
	return true
}

func (d *formDoc) Get(name string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	value, ok := d.fields[name]
	return value, ok
}

func (d *formDoc) snapshot() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]string, len(d.fields))
	for k, v := range d.fields {
		out[k] = v
	}
	return out
}

// Session is one user's live capture state: markers, active mode, and form
// field values. Single-user by design; rapid clicks share the accepted
// last-write-wins label race. The controller models a single-threaded front
// end and carries no locks of its own, so mu serializes every controller
// call made on behalf of concurrent HTTP requests.
type Session struct {
	ID         uuid.UUID
	mu         sync.Mutex
	controller *engine.MapController
	controls   *modeControls
	doc        *formDoc
	lastSeen   time.Time
}

func (s *Session) touch(now time.Time) {
	s.lastSeen = now
}

// SessionStore keeps capture sessions in memory with idle expiry.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionStore creates a store and starts its expiry sweeper.
func NewSessionStore(ttl time.Duration) *SessionStore {
	store := &SessionStore{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go store.sweep()
	return store
}

// Put stores a session.
func (st *SessionStore) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s.touch(time.Now())
	st.sessions[s.ID] = s
}

// Get returns a live session and refreshes its idle timer.
func (st *SessionStore) Get(id uuid.UUID) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	s.touch(time.Now())
	return s, true
}

// Close stops the expiry sweeper.
func (st *SessionStore) Close() {
	st.stopOnce.Do(func() { close(st.stop) })
}

func (st *SessionStore) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-st.stop:
			return
		case now := <-ticker.C:
			st.mu.Lock()
			for id, s := range st.sessions {
				if now.Sub(s.lastSeen) > st.ttl {
					delete(st.sessions, id)
				}
			}
			st.mu.Unlock()
		}
	}
}
