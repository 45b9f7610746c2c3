package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewRedisDB_PingError(t *testing.T) {
	origNew := newRedisClient
	origPing := redisPing
	t.Cleanup(func() {
		newRedisClient = origNew
		redisPing = origPing
	})

	newRedisClient = func(opts *redis.Options) *redis.Client {
		return &redis.Client{}
	}
	pingErr := errors.New("ping failed")
	redisPing = func(ctx context.Context, client *redis.Client) error {
		return pingErr
	}

	_, err := NewRedisDB("localhost:6379", "pass", 2)
	if err == nil {
		t.Fatal("expected ping error")
	}
	if !errors.Is(err, pingErr) {
		t.Fatalf("expected ping error to wrap %v, got %v", pingErr, err)
	}
	if !strings.Contains(err.Error(), "pinging redis") {
		t.Fatalf("expected ping error message context, got %q", err.Error())
	}
}

func TestNewRedisDB_SetsOptions(t *testing.T) {
	origNew := newRedisClient
	origPing := redisPing
	t.Cleanup(func() {
		newRedisClient = origNew
		redisPing = origPing
	})

	var got redis.Options
	newRedisClient = func(opts *redis.Options) *redis.Client {
		got = *opts
		return &redis.Client{}
	}
	redisPing = func(ctx context.Context, client *redis.Client) error {
		return nil
	}

	db, err := NewRedisDB("localhost:6379", "pass", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db == nil || db.Client == nil {
		t.Fatal("expected redis db with client")
	}
	if got.Addr != "localhost:6379" || got.Password != "pass" || got.DB != 2 {
		t.Fatalf("unexpected options: %+v", got)
	}
	if got.DialTimeout != 5*time.Second {
		t.Fatalf("expected dial timeout 5s, got %s", got.DialTimeout)
	}
}
