package games

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/rafaelduarte/gamesetup-backend/pkg/errors"
	"github.com/rafaelduarte/gamesetup-backend/pkg/rawg"
)

type stubCatalog struct {
	searchCalls int
	getCalls    int
	summaries   []rawg.GameSummary
	game        *rawg.Game
	err         error
}

func (s *stubCatalog) Search(ctx context.Context, query string) ([]rawg.GameSummary, error) {
	s.searchCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.summaries, nil
}

func (s *stubCatalog) GetGame(ctx context.Context, gameID string) (*rawg.Game, error) {
	s.getCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.game, nil
}

type fakeCache struct {
	entries map[string]string
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.entries[key]; ok {
		return v, nil
	}
	return "", errors.New("cache miss")
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = value.(string)
	return nil
}

func (f *fakeCache) CacheKey(scope string, parts ...string) string {
	return "test:" + scope + ":" + strings.Join(parts, ":")
}

func TestServiceSearchEmptyQuery(t *testing.T) {
	svc, err := NewService(ServiceParams{Catalog: &stubCatalog{}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Search(context.Background(), "  ")
	if err == nil {
		t.Fatal("expected error")
	}
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestServiceSearchWithoutCache(t *testing.T) {
	catalog := &stubCatalog{summaries: []rawg.GameSummary{{ID: 1, Name: "Doom"}}}
	svc, err := NewService(ServiceParams{Catalog: catalog})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	results, err := svc.Search(context.Background(), "doom")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Doom" {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestServiceSearchCacheHitSkipsUpstream(t *testing.T) {
	catalog := &stubCatalog{summaries: []rawg.GameSummary{{ID: 1, Name: "Doom"}}}
	cache := newFakeCache()
	cached, _ := json.Marshal([]rawg.GameSummary{{ID: 2, Name: "Cached Doom"}})
	cache.entries["test:games:search:doom"] = string(cached)

	svc, err := NewService(ServiceParams{Catalog: catalog, Cache: cache})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	results, err := svc.Search(context.Background(), "doom")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if catalog.searchCalls != 0 {
		t.Fatalf("expected no upstream call, got %d", catalog.searchCalls)
	}
	if len(results) != 1 || results[0].Name != "Cached Doom" {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestServiceSearchPopulatesCache(t *testing.T) {
	catalog := &stubCatalog{summaries: []rawg.GameSummary{{ID: 1, Name: "Doom"}}}
	cache := newFakeCache()

	svc, err := NewService(ServiceParams{Catalog: catalog, Cache: cache})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Search(context.Background(), "doom"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if _, ok := cache.entries["test:games:search:doom"]; !ok {
		t.Fatalf("expected cache entry, got %+v", cache.entries)
	}
}

func TestServiceSearchCacheWriteFailureIsIgnored(t *testing.T) {
	catalog := &stubCatalog{summaries: []rawg.GameSummary{{ID: 1, Name: "Doom"}}}
	cache := newFakeCache()
	cache.setErr = errors.New("redis down")

	svc, err := NewService(ServiceParams{Catalog: catalog, Cache: cache})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	results, err := svc.Search(context.Background(), "doom")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestServiceGetByID(t *testing.T) {
	catalog := &stubCatalog{game: &rawg.Game{ID: 3498, Name: "GTA V"}}
	cache := newFakeCache()

	svc, err := NewService(ServiceParams{Catalog: catalog, Cache: cache})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	game, err := svc.GetByID(context.Background(), "3498")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if game.Name != "GTA V" {
		t.Fatalf("unexpected game %+v", game)
	}

	// second lookup served from cache
	if _, err := svc.GetByID(context.Background(), "3498"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if catalog.getCalls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", catalog.getCalls)
	}
}

func TestServiceGetByIDUpstreamError(t *testing.T) {
	catalog := &stubCatalog{err: pkgerrors.New(pkgerrors.CodeDependency, "upstream down")}
	svc, err := NewService(ServiceParams{Catalog: catalog})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.GetByID(context.Background(), "3498")
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("unexpected error %v", err)
	}
}
