package engine

// CaptureController tracks which trip endpoint the next map click assigns and
// owns the two placement markers. It knows nothing about forms or geocoding;
// it is pure mode and marker bookkeeping.
type CaptureController struct {
	mode     CaptureMode
	tileMap  TileMap
	controls ModeControls
	markers  map[CaptureMode]Marker
	attached map[CaptureMode]bool
}

// NewCaptureController creates a controller in ModeFrom. Both placement
// markers are created at the default center but not attached to the map;
// each attaches lazily on the first click in its mode.
func NewCaptureController(tileMap TileMap, controls ModeControls, defaultCenter Point) *CaptureController {
	c := &CaptureController{
		mode:     ModeFrom,
		tileMap:  tileMap,
		controls: controls,
		markers: map[CaptureMode]Marker{
			ModeFrom: tileMap.NewMarker(defaultCenter),
			ModeTo:   tileMap.NewMarker(defaultCenter),
		},
		attached: map[CaptureMode]bool{},
	}
	c.controls.SetActive(c.mode)
	return c
}

// Mode returns the active capture mode.
func (c *CaptureController) Mode() CaptureMode {
	return c.mode
}

// SetMode switches the active mode and updates the control highlighting.
// Re-selecting the current mode is a safe no-op.
func (c *CaptureController) SetMode(mode CaptureMode) {
	if !mode.Valid() {
		return
	}
	c.mode = mode
	c.controls.SetActive(mode)
}

// Click places the active mode's marker at p, attaching it to the map on
// first use. The other mode's marker is untouched. Returns the mode the
// click was captured under.
func (c *CaptureController) Click(p Point) CaptureMode {
	marker := c.markers[c.mode]
	if !c.attached[c.mode] {
		c.tileMap.AddMarker(marker)
		c.attached[c.mode] = true
	}
	marker.SetLatLng(p)
	return c.mode
}

// MarkerPosition returns the position of the given mode's marker and whether
// that marker has been attached to the map yet.
func (c *CaptureController) MarkerPosition(mode CaptureMode) (Point, bool) {
	marker, ok := c.markers[mode]
	if !ok {
		return Point{}, false
	}
	return marker.Position(), c.attached[mode]
}
