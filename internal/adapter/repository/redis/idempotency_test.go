package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyStore_ReserveNewKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	reserved, resp, err := store.Reserve(ctx, "pending", time.Minute)
	if err != nil || !reserved || resp != nil {
		t.Fatalf("unexpected result: reserved=%v resp=%v err=%v", reserved, resp, err)
	}

	val, err := client.Get(ctx, store.prefix+"pending").Result()
	if err != nil || val != pendingMarker {
		t.Fatalf("expected placeholder lock, got val=%s err=%v", val, err)
	}
	if ttl := mr.TTL(store.prefix + "pending"); ttl != time.Minute {
		t.Fatalf("expected ttl of one minute, got %v", ttl)
	}
}

func TestIdempotencyStore_ReserveInFlight(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.Reserve(ctx, "key", time.Minute); err != nil {
		t.Fatalf("first reserve failed: %v", err)
	}

	reserved, resp, err := store.Reserve(ctx, "key", time.Minute)
	if err != nil {
		t.Fatalf("second reserve failed: %v", err)
	}
	if reserved || resp != nil {
		t.Fatalf("expected in-flight key, got reserved=%v resp=%s", reserved, resp)
	}
}

func TestIdempotencyStore_ReserveCompleted(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.Reserve(ctx, "key", time.Minute); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if err := store.Complete(ctx, "key", []byte(`{"status":201}`), time.Minute); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	reserved, resp, err := store.Reserve(ctx, "key", time.Minute)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if reserved || string(resp) != `{"status":201}` {
		t.Fatalf("expected stored response, got reserved=%v resp=%s", reserved, resp)
	}
}

func TestIdempotencyStore_Release(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.Reserve(ctx, "key", time.Minute); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if err := store.Release(ctx, "key"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	if mr.Exists(store.prefix + "key") {
		t.Fatal("expected key to be deleted")
	}

	reserved, _, err := store.Reserve(ctx, "key", time.Minute)
	if err != nil || !reserved {
		t.Fatalf("expected key to be reservable again, reserved=%v err=%v", reserved, err)
	}
}

func TestIdempotencyStore_RedisDown(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()
	mr.Close()

	store := NewIdempotencyStore(client)
	if _, _, err := store.Reserve(context.Background(), "key", time.Minute); err == nil {
		t.Fatal("expected error when redis is unavailable")
	}
}
