package service

import (
	"context"

	"village_rides_backend/internal/audit/repository"
	"village_rides_backend/internal/audit/transport"
	"village_rides_backend/internal/events"
	"village_rides_backend/platform/apperr"
	"village_rides_backend/platform/logger"

	"github.com/google/uuid"
)

const listLimit = 500

// Audit actions recorded in the trail.
const (
	ActionRideOffered        = "ride_offered"
	ActionRideRequested      = "ride_requested"
	ActionListingDeactivated = "listing_deactivated"
	ActionListingFlagged     = "listing_flagged"
	ActionListingUnflagged   = "listing_unflagged"
	ActionAdminLogin         = "admin_login"
	ActionAdminLogout        = "admin_logout"
)

type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListRecent returns the newest audit entries for the admin panel.
func (s *Service) ListRecent(ctx context.Context) ([]transport.EntryResponse, error) {
	entries, err := s.repo.ListRecent(ctx, listLimit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list audit logs", err)
	}

	out := make([]transport.EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := transport.EntryResponse{
			ID:        e.ID,
			Action:    e.Action,
			RideID:    e.RideID,
			RequestID: e.RequestID,
			CreatedAt: e.CreatedAt,
		}
		if e.Actor != nil {
			resp.Actor = *e.Actor
		}
		out = append(out, resp)
	}
	return out, nil
}

// Subscribe registers the audit trail on every auditable domain event.
func (s *Service) Subscribe(bus events.Bus) {
	bus.Subscribe(events.RideOffered{}.EventName(), events.HandlerFunc(s.onEvent))
	bus.Subscribe(events.RideRequested{}.EventName(), events.HandlerFunc(s.onEvent))
	bus.Subscribe(events.ListingDeactivated{}.EventName(), events.HandlerFunc(s.onEvent))
	bus.Subscribe(events.ListingFlagged{}.EventName(), events.HandlerFunc(s.onEvent))
	bus.Subscribe(events.AdminLoggedIn{}.EventName(), events.HandlerFunc(s.onEvent))
	bus.Subscribe(events.AdminLoggedOut{}.EventName(), events.HandlerFunc(s.onEvent))
}

func (s *Service) onEvent(ctx context.Context, event events.Event) error {
	params, ok := toParams(event)
	if !ok {
		return nil
	}

	if err := s.repo.Insert(ctx, params); err != nil {
		s.log.DatabaseError("audit insert", err)
		return err
	}
	return nil
}

func toParams(event events.Event) (repository.InsertParams, bool) {
	switch e := event.(type) {
	case events.RideOffered:
		return repository.InsertParams{
			Action: ActionRideOffered,
			RideID: &e.RideID,
		}, true
	case events.RideRequested:
		return repository.InsertParams{
			Action:    ActionRideRequested,
			RequestID: &e.RequestID,
		}, true
	case events.ListingDeactivated:
		params := repository.InsertParams{
			Action: ActionListingDeactivated,
			Actor:  actorOf(e.Actor),
		}
		setListing(&params, e.Kind, e.ListingID)
		return params, true
	case events.ListingFlagged:
		action := ActionListingFlagged
		if !e.Flagged {
			action = ActionListingUnflagged
		}
		params := repository.InsertParams{
			Action: action,
			Actor:  actorOf(e.Actor),
		}
		setListing(&params, e.Kind, e.ListingID)
		return params, true
	case events.AdminLoggedIn:
		return repository.InsertParams{
			Action: ActionAdminLogin,
			Actor:  actorOf(e.Username),
		}, true
	case events.AdminLoggedOut:
		return repository.InsertParams{
			Action: ActionAdminLogout,
			Actor:  actorOf(e.Username),
		}, true
	}
	return repository.InsertParams{}, false
}

func setListing(params *repository.InsertParams, kind events.ListingKind, id uuid.UUID) {
	if kind == events.ListingKindRide {
		params.RideID = &id
	} else {
		params.RequestID = &id
	}
}

func actorOf(actor string) *string {
	if actor == "" {
		return nil
	}
	return &actor
}
