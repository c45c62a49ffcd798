package engine

import (
	"context"
	"fmt"

	"village_rides_backend/platform/logger"
)

// GeoLookupClient resolves coordinates to display labels. It wraps a Geocoder
// and guarantees the caller always receives a label: every failure path falls
// back to the coordinates rendered to five decimal places.
type GeoLookupClient struct {
	geocoder Geocoder
	log      *logger.Logger
}

// NewGeoLookupClient creates a lookup client.
func NewGeoLookupClient(geocoder Geocoder, log *logger.Logger) *GeoLookupClient {
	return &GeoLookupClient{geocoder: geocoder, log: log}
}

// FallbackLabel renders a coordinate pair as "{lat}, {lng}" with five
// decimal places.
func FallbackLabel(lat, lng float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lng)
}

// Resolve returns a display label for the coordinate. Label priority is
// village, town, city, the provider's display name, then the numeric
// fallback. A failed lookup is terminal for this call and resolves to the
// fallback immediately; no retries.
func (c *GeoLookupClient) Resolve(ctx context.Context, lat, lng float64) string {
	place, err := c.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		if c.log != nil {
			c.log.GeocodeFallback(lat, lng, err)
		}
		return FallbackLabel(lat, lng)
	}

	switch {
	case place.Village != "":
		return place.Village
	case place.Town != "":
		return place.Town
	case place.City != "":
		return place.City
	case place.DisplayName != "":
		return place.DisplayName
	}
	return FallbackLabel(lat, lng)
}
