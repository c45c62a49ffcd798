// Package service assembles map scenes from the listing modules and manages
// location-capture sessions.
package service

import (
	"context"
	"time"

	"village_rides_backend/internal/geomap/engine"
	"village_rides_backend/internal/geomap/transport"
	"village_rides_backend/platform/apperr"
	"village_rides_backend/platform/config"
	"village_rides_backend/platform/logger"

	"github.com/google/uuid"
)

const sessionTTL = 30 * time.Minute

// RideSource supplies active ride offers for the map.
type RideSource interface {
	ActiveRides(ctx context.Context) ([]engine.RideView, error)
}

// RequestSource supplies open ride requests for the map.
type RequestSource interface {
	ActiveRequests(ctx context.Context) ([]engine.RequestView, error)
}

// Service renders the shared map scene and runs capture sessions.
type Service struct {
	cfg      config.MapConfig
	rides    RideSource
	requests RequestSource
	renderer *engine.LayerRenderer
	lookup   *engine.GeoLookupClient
	sessions *SessionStore
	log      *logger.Logger
}

// New creates the geomap service.
func New(cfg config.MapConfig, rides RideSource, requests RequestSource, lookup *engine.GeoLookupClient, log *logger.Logger) *Service {
	return &Service{
		cfg:      cfg,
		rides:    rides,
		requests: requests,
		renderer: engine.NewLayerRenderer(),
		lookup:   lookup,
		sessions: NewSessionStore(sessionTTL),
		log:      log,
	}
}

// Close releases background resources.
func (s *Service) Close() {
	s.sessions.Close()
}

func (s *Service) settings() engine.MapSettings {
	return engine.MapSettings{
		Defaults: engine.Viewport{
			Center: engine.Point{Lat: s.cfg.GetMapDefaultLat(), Lng: s.cfg.GetMapDefaultLng()},
			Zoom:   s.cfg.GetMapDefaultZoom(),
		},
		FitPaddingPx:    s.cfg.GetMapFitPadding(),
		TileURLTemplate: s.cfg.GetTileURLTemplate(),
		TileAttribution: s.cfg.GetTileAttribution(),
	}
}

// Scene renders the current listings into overlay groups plus a viewport
// decision for the front end.
func (s *Service) Scene(ctx context.Context) (transport.SceneResponse, error) {
	rides, err := s.rides.ActiveRides(ctx)
	if err != nil {
		return transport.SceneResponse{}, err
	}
	requests, err := s.requests.ActiveRequests(ctx)
	if err != nil {
		return transport.SceneResponse{}, err
	}

	scene := s.renderer.Render(rides, requests)
	settings := s.settings()

	resp := transport.SceneResponse{
		Rides:    scene.Rides,
		Requests: scene.Requests,
		Tiles: transport.TileLayer{
			URLTemplate: settings.TileURLTemplate,
			Attribution: settings.TileAttribution,
		},
		Viewport: transport.ViewportDecision{
			Center: settings.Defaults.Center,
			Zoom:   settings.Defaults.Zoom,
		},
	}

	if scene.HasGeometry() {
		bounds := scene.Bounds
		resp.Viewport.FitBounds = &bounds
		resp.Viewport.PaddingPx = settings.FitPaddingPx
	}

	return resp, nil
}

// ResolveLabel resolves a display label for a coordinate. It never fails:
// geocoding errors degrade to the numeric fallback label.
func (s *Service) ResolveLabel(ctx context.Context, lat, lng float64) string {
	return s.lookup.Resolve(ctx, lat, lng)
}

// CreateSession starts a capture session and returns its initial state.
func (s *Service) CreateSession() transport.SessionState {
	settings := s.settings()

	tileMap := &sessionMap{}
	controls := &modeControls{}
	doc := newFormDoc()

	session := &Session{
		ID:       uuid.New(),
		controls: controls,
		doc:      doc,
	}
	session.controller = engine.NewMapController(settings, tileMap, controls, doc, s.lookup, s.log)
	session.controller.Start(nil, nil)

	s.sessions.Put(session)

	session.mu.Lock()
	defer session.mu.Unlock()
	return s.stateOf(session)
}

// SelectMode switches a session's capture mode.
func (s *Service) SelectMode(id uuid.UUID, mode engine.CaptureMode) (transport.SessionState, error) {
	if !mode.Valid() {
		return transport.SessionState{}, apperr.Validation("mode must be \"from\" or \"to\"")
	}
	session, ok := s.sessions.Get(id)
	if !ok {
		return transport.SessionState{}, apperr.NotFound("capture session not found")
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.controller.SelectMode(mode)
	return s.stateOf(session), nil
}

// Click records a map click: the session's coordinates update synchronously,
// the resolved label arrives asynchronously.
func (s *Service) Click(ctx context.Context, id uuid.UUID, p engine.Point) (transport.SessionState, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return transport.SessionState{}, apperr.NotFound("capture session not found")
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.controller.Click(ctx, p)
	return s.stateOf(session), nil
}

// SessionState returns a session's current state.
func (s *Service) SessionState(id uuid.UUID) (transport.SessionState, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return transport.SessionState{}, apperr.NotFound("capture session not found")
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return s.stateOf(session), nil
}

func (s *Service) stateOf(session *Session) transport.SessionState {
	// The reported mode comes from the highlighted toggle, which the
	// controller keeps in step with its internal state.
	state := transport.SessionState{
		ID:      session.ID,
		Mode:    session.controls.Active(),
		Markers: make(map[string]transport.MarkerState, 2),
		Fields:  session.doc.snapshot(),
	}

	for _, mode := range []engine.CaptureMode{engine.ModeFrom, engine.ModeTo} {
		pos, attached := session.controller.MarkerPosition(mode)
		state.Markers[string(mode)] = transport.MarkerState{
			Position: pos,
			Attached: attached,
		}
	}
	return state
}
