package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cine_social_server/internal/config"
	"cine_social_server/pkg/errorx"
)

func newTMDBServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Query().Get("api_key") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/movie/603":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":603,"title":"The Matrix","poster_path":"/m.jpg","vote_average":8.2}`))
		case "/movie/500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestTMDBClient(t *testing.T) {
	var hits int32
	srv := newTMDBServer(t, &hits)
	defer srv.Close()
	client := NewTMDBClient(srv.URL+"/", "k", time.Second)
	ctx := context.Background()

	md, err := client.GetMetadata(ctx, 603)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if md.Title != "The Matrix" || md.PosterPath != "/m.jpg" || md.Rating != 8.2 || md.ItemId != 603 {
		t.Fatalf("metadata = %+v", md)
	}

	if _, err := client.GetMetadata(ctx, 1); !errorx.IsNotFound(err) {
		t.Fatalf("missing movie: %v", err)
	}
	if _, err := client.GetMetadata(ctx, 500); !errors.Is(err, errorx.ErrUnavailable) {
		t.Fatalf("server error: %v", err)
	}
}

func TestTMDBClientOpensCircuit(t *testing.T) {
	var hits int32
	srv := newTMDBServer(t, &hits)
	defer srv.Close()
	client := NewTMDBClient(srv.URL, "k", time.Second)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = client.GetMetadata(ctx, 500)
	}
	before := atomic.LoadInt32(&hits)
	_, err := client.GetMetadata(ctx, 603)
	if !errors.Is(err, errorx.ErrUnavailable) {
		t.Fatalf("open circuit should fail fast, got %v", err)
	}
	if atomic.LoadInt32(&hits) != before {
		t.Fatalf("request reached server while circuit open")
	}
}

func TestTMDBClientNotFoundDoesNotTrip(t *testing.T) {
	var hits int32
	srv := newTMDBServer(t, &hits)
	defer srv.Close()
	client := NewTMDBClient(srv.URL, "k", time.Second)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, _ = client.GetMetadata(ctx, 1)
	}
	if _, err := client.GetMetadata(ctx, 603); err != nil {
		t.Fatalf("not-found responses tripped the breaker: %v", err)
	}
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]string
}

func (c *mapCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *mapCache) DeleteByPattern(context.Context, string) error { return nil }
func (c *mapCache) Incr(context.Context, string) (int64, error)    { return 0, nil }

func TestCachedServiceServesFromCache(t *testing.T) {
	var hits int32
	srv := newTMDBServer(t, &hits)
	defer srv.Close()
	cache := &mapCache{data: map[string]string{}}
	svc := NewCachedService(NewTMDBClient(srv.URL, "k", time.Second), cache, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		md, err := svc.GetMetadata(ctx, 603)
		if err != nil || md.Title != "The Matrix" {
			t.Fatalf("get #%d: %+v, %v", i, md, err)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("upstream hits = %d, want 1", got)
	}
	if _, ok := cache.data["catalog:movie:603"]; !ok {
		t.Fatalf("metadata not cached")
	}
}

func TestNewServiceWithoutKey(t *testing.T) {
	if NewService(&config.CatalogConfig{}, nil) != nil {
		t.Fatalf("empty api key should disable the catalog")
	}
}
