package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rafaelduarte/gamesetup-backend/internal/auth"
	"github.com/rafaelduarte/gamesetup-backend/internal/setups"
	"github.com/rafaelduarte/gamesetup-backend/internal/users"
	pkgAuth "github.com/rafaelduarte/gamesetup-backend/pkg/auth"
	"github.com/rafaelduarte/gamesetup-backend/pkg/config"
	"github.com/rafaelduarte/gamesetup-backend/pkg/logger"
	"github.com/rafaelduarte/gamesetup-backend/pkg/rawg"
)

type routerGamesStub struct {
	searchCalls int
	detailCalls int
}

func (s *routerGamesStub) Search(ctx context.Context, query string) ([]rawg.GameSummary, error) {
	s.searchCalls++
	return []rawg.GameSummary{{ID: 3498, Name: "Grand Theft Auto V"}}, nil
}

func (s *routerGamesStub) GetByID(ctx context.Context, gameID string) (*rawg.Game, error) {
	s.detailCalls++
	return &rawg.Game{ID: 3498, Name: "Grand Theft Auto V"}, nil
}

type routerSetupsStub struct {
	listCalls int
}

func (s *routerSetupsStub) BuildForGame(ctx context.Context, userID uuid.UUID, gameID string) (*setups.SetupDTO, error) {
	return &setups.SetupDTO{ID: uuid.New(), UserID: userID, GameID: gameID}, nil
}

func (s *routerSetupsStub) BuildWithBudget(ctx context.Context, userID uuid.UUID, gameID string, budget float64) (*setups.SetupDTO, error) {
	return &setups.SetupDTO{ID: uuid.New(), UserID: userID, GameID: gameID, Budget: budget}, nil
}

func (s *routerSetupsStub) ListMine(ctx context.Context, userID uuid.UUID) ([]*setups.SetupDTO, error) {
	s.listCalls++
	return nil, nil
}

func (s *routerSetupsStub) UpdateBudget(ctx context.Context, userID uuid.UUID, setupID string, budget float64) (*setups.SetupDTO, error) {
	return &setups.SetupDTO{UserID: userID, Budget: budget}, nil
}

func (s *routerSetupsStub) Remove(ctx context.Context, userID uuid.UUID, setupID string) error {
	return nil
}

type routerAuthStub struct{}

func (routerAuthStub) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{Token: "token", User: &users.UserDTO{Email: req.Email}}, nil
}

type routerRegisterStub struct{}

func (routerRegisterStub) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New(), Name: req.Name, Email: req.Email}, nil
}

func routerTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:          "router-test-secret",
			Issuer:          "gamesetup",
			ExpirationHours: 1,
		},
	}
}

func newTestRouter(t *testing.T, games *routerGamesStub, sets *routerSetupsStub) http.Handler {
	t.Helper()
	return NewRouter(RouterParams{
		Config:          routerTestConfig(),
		Logger:          logger.New(logger.Options{ServiceName: "router-test", Level: zerolog.Disabled, Output: io.Discard}),
		AuthService:     routerAuthStub{},
		RegisterService: routerRegisterStub{},
		GamesService:    games,
		SetupsService:   sets,
	})
}

func bearerFor(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "rafael@example.com",
		Name:   "Rafael",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func TestRouterHealth(t *testing.T) {
	router := newTestRouter(t, &routerGamesStub{}, &routerSetupsStub{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRouterSearchDoesNotMatchDetails(t *testing.T) {
	games := &routerGamesStub{}
	router := newTestRouter(t, games, &routerSetupsStub{})

	req := httptest.NewRequest(http.MethodGet, "/games/search?q=gta", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if games.searchCalls != 1 || games.detailCalls != 0 {
		t.Fatalf("search routed to wrong handler: search=%d detail=%d", games.searchCalls, games.detailCalls)
	}
}

func TestRouterDetailsIsPublic(t *testing.T) {
	games := &routerGamesStub{}
	router := newTestRouter(t, games, &routerSetupsStub{})

	req := httptest.NewRequest(http.MethodGet, "/games/3498", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if games.detailCalls != 1 {
		t.Fatalf("expected details handler, got search=%d detail=%d", games.searchCalls, games.detailCalls)
	}
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t, &routerGamesStub{}, &routerSetupsStub{})

	cases := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodGet, "/games/my-setups", ""},
		{http.MethodPost, "/games/3498/build", ""},
		{http.MethodPost, "/games/3498/build-with-budget", `{"budget":9000}`},
		{http.MethodPut, "/games/setups/" + uuid.NewString(), `{"budget":9000}`},
		{http.MethodDelete, "/games/setups/" + uuid.NewString(), ""},
	}

	for _, tc := range cases {
		var req *http.Request
		if tc.body == "" {
			req = httptest.NewRequest(tc.method, tc.target, nil)
		} else {
			req = httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.target, rec.Code)
		}
	}
}

func TestRouterMySetupsWithToken(t *testing.T) {
	sets := &routerSetupsStub{}
	router := newTestRouter(t, &routerGamesStub{}, sets)

	req := httptest.NewRequest(http.MethodGet, "/games/my-setups", nil)
	req.Header.Set("Authorization", bearerFor(t, routerTestConfig()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if sets.listCalls != 1 {
		t.Fatalf("expected list call, got %d", sets.listCalls)
	}
}

func TestRouterRegisterWired(t *testing.T) {
	router := newTestRouter(t, &routerGamesStub{}, &routerSetupsStub{})

	body := `{"name":"Rafael","email":"rafael@example.com","password":"hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
}
