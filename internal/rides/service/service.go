package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"village_rides_backend/internal/events"
	"village_rides_backend/internal/rides/repository"
	"village_rides_backend/internal/rides/transport"
	"village_rides_backend/platform/apperr"
	"village_rides_backend/platform/logger"
	"village_rides_backend/platform/phone"
	"village_rides_backend/platform/sanitize"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	dateLayout = "2006-01-02"

	searchLimit = 200
	adminLimit  = 500

	minSeats = 1
	maxSeats = 8

	qrImageSize = 256
)

type Service struct {
	repo       *repository.Repository
	bus        events.Bus
	appBaseURL string
	log        *logger.Logger
}

func New(repo *repository.Repository, bus events.Bus, appBaseURL string, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		bus:        bus,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		log:        log,
	}
}

func today() string {
	return time.Now().Format(dateLayout)
}

func validRideType(t string) bool {
	switch t {
	case transport.RideTypeWork, transport.RideTypeSchool, transport.RideTypeHealthcare, transport.RideTypeOther:
		return true
	}
	return false
}

func validateOffer(req transport.CreateRideRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(req.Driver) == "" {
		errs["driver"] = "Моля, въведете име на шофьора."
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
	if req.Seats < minSeats || req.Seats > maxSeats {
		errs["seats"] = "Броят места трябва да е между 1 и 8."
	}
	if req.RideType != "" && !validRideType(req.RideType) {
		errs["ride_type"] = "Моля, изберете валиден тип превоз."
	}

	return errs
}

// Create publishes a new ride offer.
func (s *Service) Create(ctx context.Context, req transport.CreateRideRequest) (transport.CreateRideResponse, error) {
	if req.Seats == 0 {
		req.Seats = minSeats
	}
	if strings.TrimSpace(req.RideType) == "" {
		req.RideType = transport.RideTypeOther
	}

	if errs := validateOffer(req); len(errs) > 0 {
		return transport.CreateRideResponse{}, apperr.Validation("Невалидни данни.").WithDetails(errs)
	}

	ride, err := s.repo.Create(ctx, repository.CreateRideParams{
		Driver:       sanitize.Text(req.Driver),
		Phone:        phone.NormalizeE164(req.Phone),
		FromLocation: sanitize.Text(req.FromLocation),
		ToLocation:   sanitize.Text(req.ToLocation),
		Date:         req.Date,
		Time:         req.Time,
		Seats:        req.Seats,
		RideType:     req.RideType,
		FromLat:      req.FromLat,
		FromLng:      req.FromLng,
		ToLat:        req.ToLat,
		ToLng:        req.ToLng,
	})
	if err != nil {
		return transport.CreateRideResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create ride", err)
	}

	s.bus.Publish(ctx, events.RideOffered{
		BaseEvent:    events.NewBaseEvent(),
		RideID:       ride.ID,
		Driver:       ride.Driver,
		FromLocation: ride.FromLocation,
		ToLocation:   ride.ToLocation,
		Date:         ride.Date,
	})

	return transport.CreateRideResponse{
		ID:      ride.ID,
		Message: "Превозът е предложен успешно.",
	}, nil
}

// Search returns active upcoming rides matching the filters.
func (s *Service) Search(ctx context.Context, req transport.SearchRidesRequest) ([]transport.RideResponse, error) {
	rides, err := s.repo.Search(ctx, today(), repository.SearchParams{
		From:     strings.TrimSpace(req.From),
		To:       strings.TrimSpace(req.To),
		Date:     strings.TrimSpace(req.Date),
		RideType: strings.TrimSpace(req.RideType),
	}, searchLimit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to search rides", err)
	}
	return toResponses(rides), nil
}

// ListUpcoming returns active upcoming rides for the map scene.
func (s *Service) ListUpcoming(ctx context.Context) ([]transport.RideResponse, error) {
	rides, err := s.repo.ListUpcoming(ctx, today(), searchLimit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list rides", err)
	}
	return toResponses(rides), nil
}

// ListAll returns every ride for the admin panel.
func (s *Service) ListAll(ctx context.Context) ([]transport.RideResponse, error) {
	rides, err := s.repo.ListAll(ctx, adminLimit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list rides", err)
	}
	return toResponses(rides), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.RideResponse, error) {
	ride, err := s.repo.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return transport.RideResponse{}, apperr.NotFound("ride not found")
	}
	if err != nil {
		return transport.RideResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load ride", err)
	}
	return toResponse(ride), nil
}

// ShareQR renders a PNG QR code linking to the ride's public page, sized for
// a printed noticeboard poster.
func (s *Service) ShareQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	ride, err := s.repo.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperr.NotFound("ride not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load ride", err)
	}

	shareURL := fmt.Sprintf("%s/rides/%s", s.appBaseURL, ride.ID)
	png, err := qrcode.Encode(shareURL, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to render QR code", err)
	}
	return png, nil
}

// SetActive deactivates or reactivates a listing on behalf of an admin.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool, actor string) (transport.RideResponse, error) {
	ride, err := s.repo.SetActive(ctx, id, active)
	if err == repository.ErrNotFound {
		return transport.RideResponse{}, apperr.NotFound("ride not found")
	}
	if err != nil {
		return transport.RideResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update ride", err)
	}

	if !active {
		s.bus.Publish(ctx, events.ListingDeactivated{
			BaseEvent: events.NewBaseEvent(),
			Kind:      events.ListingKindRide,
			ListingID: ride.ID,
			Actor:     actor,
		})
	}
	return toResponse(ride), nil
}

// SetFlagged flags or unflags a listing for review.
func (s *Service) SetFlagged(ctx context.Context, id uuid.UUID, flagged bool, actor string) (transport.RideResponse, error) {
	ride, err := s.repo.SetFlagged(ctx, id, flagged)
	if err == repository.ErrNotFound {
		return transport.RideResponse{}, apperr.NotFound("ride not found")
	}
	if err != nil {
		return transport.RideResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update ride", err)
	}

	s.bus.Publish(ctx, events.ListingFlagged{
		BaseEvent: events.NewBaseEvent(),
		Kind:      events.ListingKindRide,
		ListingID: ride.ID,
		Actor:     actor,
		Flagged:   flagged,
	})
	return toResponse(ride), nil
}

// ExpirePast deactivates rides whose travel date has passed. Used by the
// expiry worker.
func (s *Service) ExpirePast(ctx context.Context) (int, error) {
	ids, err := s.repo.DeactivatePast(ctx, today())
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		s.log.Info("deactivated expired rides", "count", len(ids))
	}
	for _, id := range ids {
		s.bus.Publish(ctx, events.ListingDeactivated{
			BaseEvent: events.NewBaseEvent(),
			Kind:      events.ListingKindRide,
			ListingID: id,
			Actor:     "system",
		})
	}
	return len(ids), nil
}

// Stats returns the dashboard counters for ride offers.
func (s *Service) Stats(ctx context.Context) (repository.Stats, error) {
	return s.repo.GetStats(ctx, today())
}

func toResponse(r repository.Ride) transport.RideResponse {
	return transport.RideResponse{
		ID:            r.ID,
		Driver:        r.Driver,
		Phone:         r.Phone,
		FromLocation:  r.FromLocation,
		ToLocation:    r.ToLocation,
		Date:          r.Date,
		Time:          r.Time,
		Seats:         r.Seats,
		RideType:      r.RideType,
		RideTypeLabel: transport.RideTypeLabel(r.RideType),
		FromLat:       r.FromLat,
		FromLng:       r.FromLng,
		ToLat:         r.ToLat,
		ToLng:         r.ToLng,
		IsActive:      r.IsActive,
		IsFlagged:     r.IsFlagged,
		CreatedAt:     r.CreatedAt,
	}
}

func toResponses(rides []repository.Ride) []transport.RideResponse {
	out := make([]transport.RideResponse, 0, len(rides))
	for _, r := range rides {
		out = append(out, toResponse(r))
	}
	return out
}
