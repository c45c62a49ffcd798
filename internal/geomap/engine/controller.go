package engine

import (
	"context"

	"village_rides_backend/platform/logger"
)

// MapSettings carries the map defaults the controller initializes with.
type MapSettings struct {
	Defaults        Viewport
	FitPaddingPx    int
	TileURLTemplate string
	TileAttribution string
}

// MapController is the engine's composition root. It owns the map surface,
// renders the listing layers once at startup, and wires mode toggles and map
// clicks through capture, form binding, and label resolution.
//
// A missing map surface or field store disables the whole subsystem: every
// method becomes a logged no-op so the rest of the page stays usable.
type MapController struct {
	settings MapSettings
	tileMap  TileMap
	renderer *LayerRenderer
	capture  *CaptureController
	binder   *FormBinder
	lookup   *GeoLookupClient
	log      *logger.Logger
	disabled bool
}

// NewMapController wires the engine together. When tileMap or doc is nil the
// controller is created disabled rather than failing.
func NewMapController(settings MapSettings, tileMap TileMap, controls ModeControls, doc FieldStore, lookup *GeoLookupClient, log *logger.Logger) *MapController {
	c := &MapController{
		settings: settings,
		tileMap:  tileMap,
		renderer: NewLayerRenderer(),
		lookup:   lookup,
		log:      log,
	}

	if tileMap == nil || doc == nil {
		c.disabled = true
		if log != nil {
			log.Warn("map environment unavailable, map features disabled")
		}
		return c
	}

	c.capture = NewCaptureController(tileMap, controls, settings.Defaults.Center)
	c.binder = NewFormBinder(doc)
	return c
}

// Disabled reports whether the map subsystem is inactive.
func (c *MapController) Disabled() bool {
	return c.disabled
}

// Start installs the base tile layer, renders the listing overlays, and
// settles the viewport. Any panic during initialization is recovered and
// logged; it must not break unrelated page behavior.
func (c *MapController) Start(rides []RideView, requests []RequestView) {
	if c.disabled {
		return
	}
	defer func() {
		if r := recover(); r != nil && c.log != nil {
			c.log.Error("map initialization failed", "panic", r)
		}
	}()

	c.tileMap.AddTileLayer(c.settings.TileURLTemplate, c.settings.TileAttribution)

	scene := c.renderer.Render(rides, requests)
	c.renderer.Apply(&scene, c.tileMap, c.settings.Defaults, c.settings.FitPaddingPx)
}

// Mode returns the active capture mode.
func (c *MapController) Mode() CaptureMode {
	if c.disabled {
		return ModeFrom
	}
	return c.capture.Mode()
}

// SelectMode switches the capture mode.
func (c *MapController) SelectMode(mode CaptureMode) {
	if c.disabled {
		return
	}
	c.capture.SetMode(mode)
}

// MarkerPosition exposes marker state for the given mode.
func (c *MapController) MarkerPosition(mode CaptureMode) (Point, bool) {
	if c.disabled {
		return Point{}, false
	}
	return c.capture.MarkerPosition(mode)
}

// Click handles a map click: place the active mode's marker, write the raw
// coordinates into both forms synchronously, then resolve a display label
// asynchronously. Label arrival order across rapid clicks is not guaranteed;
// coordinates are, because they are written before this method returns.
func (c *MapController) Click(ctx context.Context, p Point) {
	if c.disabled {
		return
	}

	mode := c.capture.Click(p)
	c.binder.SetCoordinates(p.Lat, p.Lng, mode)

	// Detached from the request context: a hung lookup delays this click's
	// label, it must not be cancelled by the caller moving on.
	lookupCtx := context.WithoutCancel(ctx)
	go func() {
		label := c.lookup.Resolve(lookupCtx, p.Lat, p.Lng)
		c.binder.SetLabel(label, mode)
	}()
}
