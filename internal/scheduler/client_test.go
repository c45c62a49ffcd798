package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type schedulerConfig struct {
	redisURL string
}

func (c schedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c schedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c schedulerConfig) GetAsynqQueueName() string { return "listings" }
func (c schedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(schedulerConfig{}); err == nil {
		t.Fatal("expected error without redis url")
	}
}

func TestRedisClientOpt(t *testing.T) {
	opt, err := redisClientOpt("redis://:secret@redis.internal:6380/2", false)
	if err != nil {
		t.Fatalf("redisClientOpt: %v", err)
	}
	if opt.Addr != "redis.internal:6380" {
		t.Fatalf("addr = %q", opt.Addr)
	}
	if opt.Password != "secret" {
		t.Fatalf("password = %q", opt.Password)
	}
	if opt.DB != 2 {
		t.Fatalf("db = %d", opt.DB)
	}
	if opt.TLSConfig != nil {
		t.Fatal("unexpected TLS config for redis:// scheme")
	}

	opt, err = redisClientOpt("rediss://redis.internal:6380", true)
	if err != nil {
		t.Fatalf("redisClientOpt: %v", err)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected insecure TLS config for rediss:// with tlsInsecure")
	}

	if _, err := redisClientOpt("not a url", false); err == nil {
		t.Fatal("expected error for malformed url")
	}
}

func TestEnqueueListingExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	client, err := NewClient(schedulerConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer func() {
		_ = client.Close()
	}()

	ctx := context.Background()
	payload := ListingExpiryPayload{Reason: "test sweep"}
	if err := client.EnqueueListingExpiry(ctx, payload, time.Now()); err != nil {
		t.Fatalf("EnqueueListingExpiry: %v", err)
	}

	var found bool
	for _, key := range mr.Keys() {
		if strings.Contains(key, "{listings}") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no task landed on the listings queue; keys: %v", mr.Keys())
	}

	// A second sweep inside the uniqueness window must collapse.
	err = client.EnqueueListingExpiry(ctx, payload, time.Now())
	if !errors.Is(err, asynq.ErrDuplicateTask) {
		t.Fatalf("expected duplicate task error, got %v", err)
	}
}

func TestListingExpiryPayloadRoundTrip(t *testing.T) {
	task, err := NewListingExpiryTask(ListingExpiryPayload{Reason: "periodic"})
	if err != nil {
		t.Fatalf("NewListingExpiryTask: %v", err)
	}
	if task.Type() != TaskListingExpiry {
		t.Fatalf("task type = %q", task.Type())
	}
	payload, err := ParseListingExpiryPayload(task)
	if err != nil {
		t.Fatalf("ParseListingExpiryPayload: %v", err)
	}
	if payload.Reason != "periodic" {
		t.Fatalf("reason = %q", payload.Reason)
	}
}
