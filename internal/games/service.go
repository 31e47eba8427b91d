package games

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/rafaelduarte/gamesetup-backend/pkg/errors"
	"github.com/rafaelduarte/gamesetup-backend/pkg/logger"
	"github.com/rafaelduarte/gamesetup-backend/pkg/rawg"
)

const defaultCacheTTL = 5 * time.Minute

// Catalog is the metadata lookup surface the service depends on.
type Catalog interface {
	Search(ctx context.Context, query string) ([]rawg.GameSummary, error)
	GetGame(ctx context.Context, gameID string) (*rawg.Game, error)
}

// Cache is the optional response cache. A nil cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(scope string, parts ...string) string
}

// Service answers catalog queries, consulting the cache first when one is
// wired. Cache failures are logged and the lookup proceeds upstream.
type Service struct {
	catalog Catalog
	cache   Cache
	ttl     time.Duration
	logg    *logger.Logger
}

// ServiceParams bundles the dependencies for the games service.
type ServiceParams struct {
	Catalog  Catalog
	Cache    Cache
	CacheTTL time.Duration
	Logger   *logger.Logger
}

// NewService constructs the games service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog client is required")
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{
		catalog: params.Catalog,
		cache:   params.Cache,
		ttl:     ttl,
		logg:    params.Logger,
	}, nil
}

// Search returns up to 12 catalog matches for the query.
func (s *Service) Search(ctx context.Context, query string) ([]rawg.GameSummary, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}

	var cacheKey string
	if s.cache != nil {
		cacheKey = s.cache.CacheKey("games", "search", trimmed)
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached []rawg.GameSummary
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	results, err := s.catalog.Search(ctx, trimmed)
	if err != nil {
		return nil, err
	}

	s.cachePut(ctx, cacheKey, results)
	return results, nil
}

// GetByID returns the full metadata for one game.
func (s *Service) GetByID(ctx context.Context, gameID string) (*rawg.Game, error) {
	trimmed := strings.TrimSpace(gameID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "game id is required")
	}

	var cacheKey string
	if s.cache != nil {
		cacheKey = s.cache.CacheKey("games", "detail", trimmed)
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached rawg.Game
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	game, err := s.catalog.GetGame(ctx, trimmed)
	if err != nil {
		return nil, err
	}

	s.cachePut(ctx, cacheKey, game)
	return game, nil
}

func (s *Service) cachePut(ctx context.Context, key string, value any) {
	if s.cache == nil || key == "" {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "game metadata cache write failed")
	}
}
