// Package geocode implements the engine's Geocoder against the OSM Nominatim
// reverse-geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"village_rides_backend/internal/geomap/engine"
	"village_rides_backend/platform/config"
	"village_rides_backend/platform/logger"

	"golang.org/x/time/rate"
)

// Nominatim is a reverse-geocoding client. Requests carry only a User-Agent
// (required by the usage policy) and a language hint; no API key. A process-
// wide limiter keeps outbound traffic at one request per second.
type Nominatim struct {
	baseURL   string
	language  string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	log       *logger.Logger
}

// New creates a Nominatim client from configuration.
func New(cfg config.GeocoderConfig, log *logger.Logger) *Nominatim {
	return &Nominatim{
		baseURL:   cfg.GetNominatimBaseURL(),
		language:  cfg.GetGeocoderLanguage(),
		userAgent: cfg.GetGeocoderUserAgent(),
		client:    &http.Client{Timeout: cfg.GetGeocoderTimeout()},
		limiter:   rate.NewLimiter(rate.Limit(1), 1),
		log:       log,
	}
}

type nominatimAddress struct {
	Village string `json:"village"`
	Town    string `json:"town"`
	City    string `json:"city"`
}

// nominatimResponse mirrors the relevant parts of the OSM reverse payload.
type nominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}

// ReverseGeocode issues a single GET to /reverse. One attempt, no retries;
// the caller decides how to recover from a failure.
func (n *Nominatim) ReverseGeocode(ctx context.Context, lat, lng float64) (engine.Place, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return engine.Place{}, err
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("accept-language", n.language)

	reqURL := fmt.Sprintf("%s/reverse?%s", n.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return engine.Place{}, err
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		if n.log != nil {
			n.log.Error("nominatim request failed", "error", err)
		}
		return engine.Place{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		if n.log != nil {
			n.log.Error("nominatim upstream error", "status", resp.StatusCode)
		}
		return engine.Place{}, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var raw nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		if n.log != nil {
			n.log.Error("failed to decode nominatim payload", "error", err)
		}
		return engine.Place{}, err
	}

	return engine.Place{
		Village:     raw.Address.Village,
		Town:        raw.Address.Town,
		City:        raw.Address.City,
		DisplayName: raw.DisplayName,
	}, nil
}

var _ engine.Geocoder = (*Nominatim)(nil)
