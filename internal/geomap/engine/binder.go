package engine

import "strconv"

// fieldTriple names the place-label field and the coordinate pair backing it.
type fieldTriple struct {
	label string
	lat   string
	lng   string
}

// The offer and request forms carry parallel field sets per capture mode.
// Both are written from a single click so the forms stay mutually consistent
// even though a user only submits one of them.
var (
	offerFields = map[CaptureMode]fieldTriple{
		ModeFrom: {label: "offer_from_location", lat: "offer_from_lat", lng: "offer_from_lng"},
		ModeTo:   {label: "offer_to_location", lat: "offer_to_lat", lng: "offer_to_lng"},
	}
	requestFields = map[CaptureMode]fieldTriple{
		ModeFrom: {label: "request_from_location", lat: "request_from_lat", lng: "request_from_lng"},
		ModeTo:   {label: "request_to_location", lat: "request_to_lat", lng: "request_to_lng"},
	}
)

// FormBinder writes captured coordinates and resolved place names into the
// offer and request form fields. A field absent from the page is silently
// skipped.
type FormBinder struct {
	doc FieldStore
}

// NewFormBinder creates a binder over the page's fields.
func NewFormBinder(doc FieldStore) *FormBinder {
	return &FormBinder{doc: doc}
}

// SetCoordinates writes the numeric coordinate pair into both forms' hidden
// fields for the given mode. It is called synchronously on click, before any
// label resolution completes, so coordinates are never lost to a slow or
// failed geocode.
func (f *FormBinder) SetCoordinates(lat, lng float64, mode CaptureMode) {
	latText := strconv.FormatFloat(lat, 'f', -1, 64)
	lngText := strconv.FormatFloat(lng, 'f', -1, 64)

	for _, fields := range []map[CaptureMode]fieldTriple{offerFields, requestFields} {
		triple, ok := fields[mode]
		if !ok {
			continue
		}
		f.doc.Set(triple.lat, latText)
		f.doc.Set(triple.lng, lngText)
	}
}

// SetLabel writes the resolved place name into both forms' visible text
// fields for the given mode.
func (f *FormBinder) SetLabel(label string, mode CaptureMode) {
	for _, fields := range []map[CaptureMode]fieldTriple{offerFields, requestFields} {
		triple, ok := fields[mode]
		if !ok {
			continue
		}
		f.doc.Set(triple.label, label)
	}
}
