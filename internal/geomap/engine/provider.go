package engine

import "context"

// CaptureMode identifies which trip endpoint the next map click will set.
type CaptureMode string

const (
	// ModeFrom captures the origin coordinate.
	ModeFrom CaptureMode = "from"
	// ModeTo captures the destination coordinate.
	ModeTo CaptureMode = "to"
)

// Valid reports whether m is a known capture mode.
func (m CaptureMode) Valid() bool {
	return m == ModeFrom || m == ModeTo
}

// Marker is a movable placement marker owned by a TileMap.
type Marker interface {
	// SetLatLng moves the marker to p.
	SetLatLng(p Point)
	// Position returns the marker's current coordinate.
	Position() Point
}

// TileMap abstracts the mapping surface the engine draws on. The production
// front end realizes it with Leaflet; capture sessions and tests realize it
// in memory.
type TileMap interface {
	// AddTileLayer installs the raster basemap with its attribution string.
	AddTileLayer(urlTemplate, attribution string)
	// SetView positions the map at the default center and zoom.
	SetView(v Viewport)
	// FitBounds adjusts the viewport so b is fully visible, with pixel padding.
	FitBounds(b Bounds, paddingPx int)
	// AddOverlay installs a toggleable overlay group.
	AddOverlay(o *Overlay)
	// NewMarker creates a marker at p without attaching it to the map.
	NewMarker(p Point) Marker
	// AddMarker attaches a previously created marker to the map.
	AddMarker(m Marker)
}

// ModeControls abstracts the from/to toggle controls. Implementations mark
// exactly one control active.
type ModeControls interface {
	SetActive(mode CaptureMode)
}

// Place is a reverse-geocoding result. Fields mirror the provider's address
// detail granularity; any subset may be empty.
type Place struct {
	Village     string
	Town        string
	City        string
	DisplayName string
}

// Geocoder resolves a coordinate to a place. Implementations issue one
// outbound request per call, without retries.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (Place, error)
}

// FieldStore abstracts the page's named form fields. Set reports false when
// the field does not exist, which callers treat as a silent skip, not an
// error.
type FieldStore interface {
	Set(name, value string) bool
	Get(name string) (string, bool)
}
