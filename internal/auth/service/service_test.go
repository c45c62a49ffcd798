package service

import (
	"context"
	"testing"

	"village_rides_backend/internal/events"
	"village_rides_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeBus struct {
	published []events.Event
}

func (b *fakeBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *fakeBus) PublishSync(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *fakeBus) Subscribe(eventName string, handler events.Handler) {}

func TestLogoutPublishesEvent(t *testing.T) {
	bus := &fakeBus{}
	svc := New(nil, nil, bus, logger.New("test"))

	adminID := uuid.New()
	resp := svc.Logout(context.Background(), adminID, "admin")

	if resp.Message != "Излязохте успешно." {
		t.Fatalf("message = %q", resp.Message)
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events", len(bus.published))
	}
	event, ok := bus.published[0].(events.AdminLoggedOut)
	if !ok {
		t.Fatalf("published %T", bus.published[0])
	}
	if event.AdminID != adminID || event.Username != "admin" {
		t.Fatalf("event = %+v", event)
	}
}
