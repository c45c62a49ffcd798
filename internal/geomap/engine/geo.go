// Package engine implements the map scene and location-capture engine: layer
// rendering, capture-mode bookkeeping, reverse-geocode label resolution, and
// form binding. It depends only on capability interfaces (TileMap, Geocoder,
// FieldStore) so it can run against a real map front end or test fakes.
package engine

// Point is a WGS 84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a geographic bounding box accumulated over rendered geometry.
// The zero value is empty; Extend on an empty bounds adopts the point.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`

	nonEmpty bool
}

// Extend grows the bounds to include p.
func (b *Bounds) Extend(p Point) {
	if !b.nonEmpty {
		b.MinLat, b.MaxLat = p.Lat, p.Lat
		b.MinLng, b.MaxLng = p.Lng, p.Lng
		b.nonEmpty = true
		return
	}
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
	if p.Lng < b.MinLng {
		b.MinLng = p.Lng
	}
	if p.Lng > b.MaxLng {
		b.MaxLng = p.Lng
	}
}

// IsEmpty reports whether no point has been accumulated.
func (b *Bounds) IsEmpty() bool {
	return !b.nonEmpty
}

// Contains reports whether p lies inside the bounds (inclusive).
func (b *Bounds) Contains(p Point) bool {
	if !b.nonEmpty {
		return false
	}
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// Viewport is the map's default center and zoom, used when no geometry exists.
type Viewport struct {
	Center Point `json:"center"`
	Zoom   int   `json:"zoom"`
}
