package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rafaelduarte/gamesetup-backend/api/middleware"
	"github.com/rafaelduarte/gamesetup-backend/api/responses"
	"github.com/rafaelduarte/gamesetup-backend/api/validators"
	"github.com/rafaelduarte/gamesetup-backend/internal/setups"
	pkgerrors "github.com/rafaelduarte/gamesetup-backend/pkg/errors"
	"github.com/rafaelduarte/gamesetup-backend/pkg/logger"
	"github.com/rafaelduarte/gamesetup-backend/pkg/rawg"
)

// GamesService is the catalog surface the games controllers call.
type GamesService interface {
	Search(ctx context.Context, query string) ([]rawg.GameSummary, error)
	GetByID(ctx context.Context, gameID string) (*rawg.Game, error)
}

// SetupsService is the setup lifecycle surface the games controllers call.
type SetupsService interface {
	BuildForGame(ctx context.Context, userID uuid.UUID, gameID string) (*setups.SetupDTO, error)
	BuildWithBudget(ctx context.Context, userID uuid.UUID, gameID string, budget float64) (*setups.SetupDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*setups.SetupDTO, error)
	UpdateBudget(ctx context.Context, userID uuid.UUID, setupID string, budget float64) (*setups.SetupDTO, error)
	Remove(ctx context.Context, userID uuid.UUID, setupID string) error
}

type budgetPayload struct {
	Budget float64 `json:"budget" validate:"required,gt=0"`
}

// updateBudgetPayload carries no budget tags: the service checks ownership
// before the budget, so a foreign setup id reads as not found even when the
// budget is also bad.
type updateBudgetPayload struct {
	Budget float64 `json:"budget"`
}

// GamesSearch proxies a catalog search.
func GamesSearch(svc GamesService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "games service unavailable"))
			return
		}

		results, err := svc.Search(ctx, r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string][]rawg.GameSummary{"results": results})
	}
}

// GamesDetails proxies the full metadata of one game.
func GamesDetails(svc GamesService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "games service unavailable"))
			return
		}

		game, err := svc.GetByID(ctx, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, game)
	}
}

// GamesBuild generates a setup for the game without a declared budget.
func GamesBuild(svc SetupsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "setups service unavailable"))
			return
		}

		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		setup, err := svc.BuildForGame(ctx, userID, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, setup)
	}
}

// GamesBuildWithBudget generates a setup priced against the declared budget.
func GamesBuildWithBudget(svc SetupsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "setups service unavailable"))
			return
		}

		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var body budgetPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		setup, err := svc.BuildWithBudget(ctx, userID, chi.URLParam(r, "id"), body.Budget)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, setup)
	}
}

// GamesMySetups lists the caller's setups.
func GamesMySetups(svc SetupsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "setups service unavailable"))
			return
		}

		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		list, err := svc.ListMine(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string][]*setups.SetupDTO{"setups": list})
	}
}

// GamesUpdateSetup re-prices one of the caller's setups.
func GamesUpdateSetup(svc SetupsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "setups service unavailable"))
			return
		}

		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var body updateBudgetPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		setup, err := svc.UpdateBudget(ctx, userID, chi.URLParam(r, "setupId"), body.Budget)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"message": "setup updated",
			"setup":   setup,
		})
	}
}

// GamesDeleteSetup removes one of the caller's setups.
func GamesDeleteSetup(svc SetupsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "setups service unavailable"))
			return
		}

		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		if err := svc.Remove(ctx, userID, chi.URLParam(r, "setupId")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "setup removed"})
	}
}
