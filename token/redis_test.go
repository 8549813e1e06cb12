package token

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*Store, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(NewRedisStorage(rdb, "ak"), DefaultAccessMargin), rdb
}

func TestRedisStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	access := mintToken(t, time.Now().Add(time.Hour))
	refresh := mintToken(t, time.Now().Add(7*24*time.Hour))

	if err := store.SetTokens(ctx, access, refresh); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}
	if got, err := store.AccessToken(ctx); err != nil || got != access {
		t.Fatalf("AccessToken = %q, %v", got, err)
	}
	if got, err := store.RefreshToken(ctx); err != nil || got != refresh {
		t.Fatalf("RefreshToken = %q, %v", got, err)
	}
	if status, err := store.Status(ctx); err != nil || status != StatusValid {
		t.Fatalf("Status = %v, %v; want valid", status, err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if status, err := store.Status(ctx); err != nil || status != StatusNone {
		t.Fatalf("Status after clear = %v, %v; want none", status, err)
	}
}

func TestRedisStoragePartialRecordIsAbsent(t *testing.T) {
	ctx := context.Background()
	store, rdb := newRedisStore(t)

	if err := store.SetTokens(ctx,
		mintToken(t, time.Now().Add(time.Hour)),
		mintToken(t, time.Now().Add(7*24*time.Hour)),
	); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}

	// Simulate another process having deleted one half of the pair: the
	// remaining half must not surface as a usable token.
	if err := rdb.Del(ctx, "ak:refresh_token").Err(); err != nil {
		t.Fatalf("del failed: %v", err)
	}

	if got, err := store.AccessToken(ctx); err != nil || got != "" {
		t.Fatalf("AccessToken on partial record = %q, %v; want empty", got, err)
	}
	if status, err := store.Status(ctx); err != nil || status != StatusNone {
		t.Fatalf("Status on partial record = %v, %v; want none", status, err)
	}
}

func TestRedisStorageUnavailable(t *testing.T) {
	ctx := context.Background()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore(NewRedisStorage(rdb, "ak"), DefaultAccessMargin)

	if err := store.SetTokens(ctx,
		mintToken(t, time.Now().Add(time.Hour)),
		mintToken(t, time.Now().Add(7*24*time.Hour)),
	); err != nil {
		t.Fatalf("SetTokens failed: %v", err)
	}

	mr.Close()
	_ = rdb.Close()

	if _, _, err := NewRedisStorage(rdb, "ak").Load(ctx); err == nil {
		t.Fatal("expected storage error after backend shutdown")
	}
}
