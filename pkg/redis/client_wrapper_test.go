package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func TestPingClient_UnreachableEndpoint(t *testing.T) {
	c := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := pingClient(ctx, c); err == nil {
		t.Fatal("expected ping error for invalid redis endpoint")
	}
}

func TestPingClient_Reachable(t *testing.T) {
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis not available: %v", err)
	}
	defer srv.Close()

	c := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	defer c.Close()

	if err := pingClient(context.Background(), c); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}
