package service

import (
	"context"
	"strings"
	"time"

	"village_rides_backend/internal/events"
	"village_rides_backend/internal/requests/repository"
	"village_rides_backend/internal/requests/transport"
	"village_rides_backend/platform/apperr"
	"village_rides_backend/platform/logger"
	"village_rides_backend/platform/phone"
	"village_rides_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"

	searchLimit = 200
	adminLimit  = 500

	minPeople = 1
	maxPeople = 4
)

type Service struct {
	repo *repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

func today() string {
	return time.Now().Format(dateLayout)
}

func validateRequest(req transport.CreateRequestRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(req.Passenger) == "" {
		errs["passenger"] = "Моля, въведете име на пътника."
	}
	if strings.TrimSpace(req.Phone) == "" {
		errs["phone"] = "Моля, въведете телефон."
	}
	if strings.TrimSpace(req.FromLocation) == "" {
		errs["from_location"] = "Моля, въведете място на тръгване."
	}
	if strings.TrimSpace(req.ToLocation) == "" {
		errs["to_location"] = "Моля, въведете място на пристигане."
	}
	if strings.TrimSpace(req.Date) == "" {
		errs["date"] = "Моля, изберете дата."
	} else if d, err := time.Parse(dateLayout, req.Date); err != nil {
		errs["date"] = "Невалиден формат на дата."
	} else if d.Format(dateLayout) < today() {
		errs["date"] = "Датата не може да е в миналото."
	}
	if strings.TrimSpace(req.Time) == "" {
		errs["time"] = "Моля, изберете час."
	}
	if !transport.ValidTimeFlex(req.TimeFlex) {
		errs["time_flex"] = "Моля, изберете валидна гъвкавост на времето."
	}
	if req.PeopleCount < minPeople || req.PeopleCount > maxPeople {
		errs["people_count"] = "Броят хора трябва да е между 1 и 4."
	}

	return errs
}

// Create publishes a new ride request.
func (s *Service) Create(ctx context.Context, req transport.CreateRequestRequest) (transport.CreateRequestResponse, error) {
	if req.PeopleCount == 0 {
		req.PeopleCount = minPeople
	}

	if errs := validateRequest(req); len(errs) > 0 {
		return transport.CreateRequestResponse{}, apperr.Validation("Невалидни данни.").WithDetails(errs)
	}

	params := repository.CreateRequestParams{
		Passenger:    sanitize.Text(req.Passenger),
		Phone:        phone.NormalizeE164(req.Phone),
		FromLocation: sanitize.Text(req.FromLocation),
		ToLocation:   sanitize.Text(req.ToLocation),
		Date:         req.Date,
		Time:         req.Time,
		TimeFlex:     req.TimeFlex,
		PeopleCount:  req.PeopleCount,
		FromLat:      req.FromLat,
		FromLng:      req.FromLng,
		ToLat:        req.ToLat,
		ToLng:        req.ToLng,
	}
	if note := sanitize.Text(req.Note); note != "" {
		params.Note = &note
	}

	request, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.CreateRequestResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create ride request", err)
	}

	s.bus.Publish(ctx, events.RideRequested{
		BaseEvent:    events.NewBaseEvent(),
		RequestID:    request.ID,
		Passenger:    request.Passenger,
		FromLocation: request.FromLocation,
		ToLocation:   request.ToLocation,
		Date:         request.Date,
	})

	return transport.CreateRequestResponse{
		ID:      request.ID,
		Message: "Заявката за превоз е публикувана успешно.",
	}, nil
}

// Search returns active upcoming requests matching the filters. The status
// filter defaults to open to match the public listing view.
func (s *Service) Search(ctx context.Context, req transport.SearchRequestsRequest) ([]transport.RequestResponse, error) {
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = transport.StatusOpen
	}

	requests, err := s.repo.Search(ctx, today(), repository.SearchParams{
		From:   strings.TrimSpace(req.From),
		To:     strings.TrimSpace(req.To),
		Date:   strings.TrimSpace(req.Date),
		Status: status,
	}, searchLimit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to search ride requests", err)
	}
	return toResponses(requests), nil
}

// ListUpcoming returns open, active, upcoming requests for the map scene.
func (s *Service) ListUpcoming(ctx context.Context) ([]transport.RequestResponse, error) {
	requests, err := s.repo.ListUpcoming(ctx, today(), searchLimit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list ride requests", err)
	}
	return toResponses(requests), nil
}

// ListAll returns every request for the admin panel.
func (s *Service) ListAll(ctx context.Context) ([]transport.RequestResponse, error) {
	requests, err := s.repo.ListAll(ctx, adminLimit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list ride requests", err)
	}
	return toResponses(requests), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.RequestResponse, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return transport.RequestResponse{}, apperr.NotFound("ride request not found")
	}
	if err != nil {
		return transport.RequestResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load ride request", err)
	}
	return toResponse(request), nil
}

// SetActive deactivates or reactivates a listing on behalf of an admin.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool, actor string) (transport.RequestResponse, error) {
	request, err := s.repo.SetActive(ctx, id, active)
	if err == repository.ErrNotFound {
		return transport.RequestResponse{}, apperr.NotFound("ride request not found")
	}
	if err != nil {
		return transport.RequestResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update ride request", err)
	}

	if !active {
		s.bus.Publish(ctx, events.ListingDeactivated{
			BaseEvent: events.NewBaseEvent(),
			Kind:      events.ListingKindRequest,
			ListingID: request.ID,
			Actor:     actor,
		})
	}
	return toResponse(request), nil
}

// SetFlagged flags or unflags a listing for review.
func (s *Service) SetFlagged(ctx context.Context, id uuid.UUID, flagged bool, actor string) (transport.RequestResponse, error) {
	request, err := s.repo.SetFlagged(ctx, id, flagged)
	if err == repository.ErrNotFound {
		return transport.RequestResponse{}, apperr.NotFound("ride request not found")
	}
	if err != nil {
		return transport.RequestResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update ride request", err)
	}

	s.bus.Publish(ctx, events.ListingFlagged{
		BaseEvent: events.NewBaseEvent(),
		Kind:      events.ListingKindRequest,
		ListingID: request.ID,
		Actor:     actor,
		Flagged:   flagged,
	})
	return toResponse(request), nil
}

// SetStatus transitions a request between open and fulfilled.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (transport.RequestResponse, error) {
	if status != transport.StatusOpen && status != transport.StatusFulfilled {
		return transport.RequestResponse{}, apperr.Validation("invalid status")
	}

	request, err := s.repo.SetStatus(ctx, id, status)
	if err == repository.ErrNotFound {
		return transport.RequestResponse{}, apperr.NotFound("ride request not found")
	}
	if err != nil {
		return transport.RequestResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update ride request", err)
	}
	return toResponse(request), nil
}

// ExpirePast deactivates requests whose travel date has passed. Used by the
// expiry worker.
func (s *Service) ExpirePast(ctx context.Context) (int, error) {
	ids, err := s.repo.DeactivatePast(ctx, today())
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		s.log.Info("deactivated expired ride requests", "count", len(ids))
	}
	for _, id := range ids {
		s.bus.Publish(ctx, events.ListingDeactivated{
			BaseEvent: events.NewBaseEvent(),
			Kind:      events.ListingKindRequest,
			ListingID: id,
			Actor:     "system",
		})
	}
	return len(ids), nil
}

// Stats returns the dashboard counters for ride requests.
func (s *Service) Stats(ctx context.Context) (repository.Stats, error) {
	return s.repo.GetStats(ctx, today())
}

func toResponse(r repository.Request) transport.RequestResponse {
	resp := transport.RequestResponse{
		ID:            r.ID,
		Passenger:     r.Passenger,
		Phone:         r.Phone,
		FromLocation:  r.FromLocation,
		ToLocation:    r.ToLocation,
		Date:          r.Date,
		Time:          r.Time,
		TimeFlex:      r.TimeFlex,
		TimeFlexLabel: transport.TimeFlexLabel(r.TimeFlex),
		PeopleCount:   r.PeopleCount,
		FromLat:       r.FromLat,
		FromLng:       r.FromLng,
		ToLat:         r.ToLat,
		ToLng:         r.ToLng,
		Status:        r.Status,
		IsActive:      r.IsActive,
		IsFlagged:     r.IsFlagged,
		CreatedAt:     r.CreatedAt,
	}
	if r.Note != nil {
		resp.Note = *r.Note
	}
	return resp
}

func toResponses(requests []repository.Request) []transport.RequestResponse {
	out := make([]transport.RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toResponse(r))
	}
	return out
}
