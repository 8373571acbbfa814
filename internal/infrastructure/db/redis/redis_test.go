package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), DB: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if client.Options().DB != 2 || client.Options().ReadTimeout != defaultTimeout {
		t.Errorf("unexpected options: db=%d read=%v", client.Options().DB, client.Options().ReadTimeout)
	}
}

func TestConnect_URLWithPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")

	if _, err := Connect(context.Background(), Config{Addr: "redis://" + mr.Addr() + "/0"}); err == nil {
		t.Fatal("expected auth failure without a password")
	}

	client, err := Connect(context.Background(), Config{Addr: "redis://" + mr.Addr() + "/1", Password: "s3cret", PoolSize: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	opts := client.Options()
	if opts.DB != 1 || opts.PoolSize != 4 {
		t.Errorf("unexpected options: db=%d pool=%d", opts.DB, opts.PoolSize)
	}
}

func TestConnect_Errors(t *testing.T) {
	if _, err := Connect(context.Background(), Config{Addr: "redis://:bad:url"}); err == nil {
		t.Error("expected URL parse error")
	}

	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 100 * time.Millisecond})
	if err == nil || !strings.Contains(err.Error(), "redis ping 127.0.0.1:1") {
		t.Errorf("expected ping error naming the address, got %v", err)
	}
}
