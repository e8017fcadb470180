package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"offerboard/internal/domain"

	"github.com/redis/go-redis/v9"
)

func TestOffers_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	client := testClient(ctx, t)
	defer client.Close()

	c := NewOffers(client, time.Minute)
	slug := "backend-engineer-t3st00"
	_ = c.Delete(ctx, slug)

	miss, err := c.Get(ctx, slug)
	if err != nil || miss != nil {
		t.Fatalf("expected clean miss, got %+v %v", miss, err)
	}

	if err := c.Set(ctx, domain.Offer{Slug: slug, Title: "Backend Engineer", Salary: 100}); err != nil {
		t.Fatalf("set: %v", err)
	}
	hit, err := c.Get(ctx, slug)
	if err != nil || hit == nil || hit.Title != "Backend Engineer" || hit.Salary != 100 {
		t.Fatalf("unexpected hit %+v %v", hit, err)
	}

	if err := c.Delete(ctx, slug); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if again, _ := c.Get(ctx, slug); again != nil {
		t.Fatalf("expected miss after delete, got %+v", again)
	}
}

func TestKeyPrefix(t *testing.T) {
	if got := key("abc"); got != "offerts:slug:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}

func testClient(ctx context.Context, t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis not reachable: %v", err)
	}
	return client
}
