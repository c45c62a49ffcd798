package engine

// Scene is the rendered output of a LayerRenderer pass: two overlay groups
// plus the accumulated bounds over every plotted coordinate.
type Scene struct {
	Rides    Overlay
	Requests Overlay
	Bounds   Bounds
}

// HasGeometry reports whether at least one coordinate was plotted.
func (s *Scene) HasGeometry() bool {
	return !s.Bounds.IsEmpty()
}

// LayerRenderer converts listing records into map overlays. It never mutates
// its inputs; records with incomplete coordinates are skipped.
type LayerRenderer struct{}

// NewLayerRenderer creates a renderer.
func NewLayerRenderer() *LayerRenderer {
	return &LayerRenderer{}
}

// Render builds the rides and requests overlays. A ride needs all four
// coordinates to produce a line; a request needs only its origin pair.
func (r *LayerRenderer) Render(rides []RideView, requests []RequestView) Scene {
	scene := Scene{
		Rides:    Overlay{Name: "rides"},
		Requests: Overlay{Name: "requests"},
	}

	for _, ride := range rides {
		if ride.FromLat == nil || ride.FromLng == nil || ride.ToLat == nil || ride.ToLng == nil {
			continue
		}
		from := Point{Lat: *ride.FromLat, Lng: *ride.FromLng}
		to := Point{Lat: *ride.ToLat, Lng: *ride.ToLng}

		scene.Rides.Lines = append(scene.Rides.Lines, Line{
			From:   from,
			To:     to,
			Color:  RouteColor(ride.RideType),
			Weight: routeWeight,
			Popup:  ridePopupHTML(ride),
		})
		scene.Bounds.Extend(from)
		scene.Bounds.Extend(to)
	}

	for _, req := range requests {
		if req.FromLat == nil || req.FromLng == nil {
			continue
		}
		at := Point{Lat: *req.FromLat, Lng: *req.FromLng}

		scene.Requests.Markers = append(scene.Requests.Markers, CircleMarker{
			At:     at,
			Color:  requestMarkerColor,
			Radius: requestMarkerRadius,
			Popup:  requestPopupHTML(req),
		})
		scene.Bounds.Extend(at)
	}

	return scene
}

// Apply installs the scene on a map and settles the viewport: fit to the
// accumulated bounds when geometry exists, otherwise keep the defaults.
func (r *LayerRenderer) Apply(scene *Scene, m TileMap, defaults Viewport, paddingPx int) {
	m.AddOverlay(&scene.Rides)
	m.AddOverlay(&scene.Requests)

	if scene.HasGeometry() {
		m.FitBounds(scene.Bounds, paddingPx)
		return
	}
	m.SetView(defaults)
}
