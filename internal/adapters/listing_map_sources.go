// Package adapters bridges bounded contexts without letting them import each
// other directly.
package adapters

import (
	"context"

	"village_rides_backend/internal/geomap/engine"
	geomapservice "village_rides_backend/internal/geomap/service"
	requestsservice "village_rides_backend/internal/requests/service"
	ridesservice "village_rides_backend/internal/rides/service"
)

// RideMapSource adapts the rides service for the map scene. It implements
// geomap/service.RideSource.
type RideMapSource struct {
	svc *ridesservice.Service
}

func NewRideMapSource(svc *ridesservice.Service) *RideMapSource {
	return &RideMapSource{svc: svc}
}

func (a *RideMapSource) ActiveRides(ctx context.Context) ([]engine.RideView, error) {
	rides, err := a.svc.ListUpcoming(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]engine.RideView, 0, len(rides))
	for _, r := range rides {
		views = append(views, engine.RideView{
			Driver:        r.Driver,
			FromLocation:  r.FromLocation,
			ToLocation:    r.ToLocation,
			FromLat:       r.FromLat,
			FromLng:       r.FromLng,
			ToLat:         r.ToLat,
			ToLng:         r.ToLng,
			Date:          r.Date,
			Time:          r.Time,
			RideType:      r.RideType,
			RideTypeLabel: r.RideTypeLabel,
			Phone:         r.Phone,
		})
	}
	return views, nil
}

// RequestMapSource adapts the requests service for the map scene. It
// implements geomap/service.RequestSource.
type RequestMapSource struct {
	svc *requestsservice.Service
}

func NewRequestMapSource(svc *requestsservice.Service) *RequestMapSource {
	return &RequestMapSource{svc: svc}
}

func (a *RequestMapSource) ActiveRequests(ctx context.Context) ([]engine.RequestView, error) {
	requests, err := a.svc.ListUpcoming(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]engine.RequestView, 0, len(requests))
	for _, r := range requests {
		views = append(views, engine.RequestView{
			Passenger:     r.Passenger,
			FromLocation:  r.FromLocation,
			ToLocation:    r.ToLocation,
			FromLat:       r.FromLat,
			FromLng:       r.FromLng,
			Date:          r.Date,
			Time:          r.Time,
			TimeFlexLabel: r.TimeFlexLabel,
			PeopleCount:   r.PeopleCount,
			Note:          r.Note,
			Phone:         r.Phone,
		})
	}
	return views, nil
}

var (
	_ geomapservice.RideSource    = (*RideMapSource)(nil)
	_ geomapservice.RequestSource = (*RequestMapSource)(nil)
)
