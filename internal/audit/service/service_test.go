package service

import (
	"testing"

	"village_rides_backend/internal/events"

	"github.com/google/uuid"
)

func TestToParamsAuthEvents(t *testing.T) {
	in, ok := toParams(events.AdminLoggedIn{BaseEvent: events.NewBaseEvent(), Username: "admin"})
	if !ok || in.Action != ActionAdminLogin || in.Actor == nil || *in.Actor != "admin" {
		t.Fatalf("login params = %+v ok=%v", in, ok)
	}

	out, ok := toParams(events.AdminLoggedOut{BaseEvent: events.NewBaseEvent(), Username: "admin"})
	if !ok || out.Action != ActionAdminLogout || out.Actor == nil || *out.Actor != "admin" {
		t.Fatalf("logout params = %+v ok=%v", out, ok)
	}
}

func TestToParamsFlagToggle(t *testing.T) {
	id := uuid.New()

	flagged, ok := toParams(events.ListingFlagged{
		BaseEvent: events.NewBaseEvent(),
		Kind:      events.ListingKindRide,
		ListingID: id,
		Actor:     "admin",
		Flagged:   true,
	})
	if !ok || flagged.Action != ActionListingFlagged {
		t.Fatalf("flagged params = %+v ok=%v", flagged, ok)
	}
	if flagged.RideID == nil || *flagged.RideID != id {
		t.Fatalf("ride id = %v", flagged.RideID)
	}

	unflagged, _ := toParams(events.ListingFlagged{
		BaseEvent: events.NewBaseEvent(),
		Kind:      events.ListingKindRide,
		ListingID: id,
		Actor:     "admin",
	})
	if unflagged.Action != ActionListingUnflagged {
		t.Fatalf("unflag action = %q", unflagged.Action)
	}
}

type unrelatedEvent struct {
	events.BaseEvent
}

func (unrelatedEvent) EventName() string { return "other.event" }

func TestToParamsIgnoresUnknownEvents(t *testing.T) {
	if _, ok := toParams(unrelatedEvent{}); ok {
		t.Fatal("unrelated event should not be recorded")
	}
}
