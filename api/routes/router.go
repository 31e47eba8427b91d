package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rafaelduarte/gamesetup-backend/api/controllers"
	"github.com/rafaelduarte/gamesetup-backend/api/middleware"
	"github.com/rafaelduarte/gamesetup-backend/internal/auth"
	"github.com/rafaelduarte/gamesetup-backend/pkg/config"
	"github.com/rafaelduarte/gamesetup-backend/pkg/logger"
	"github.com/rafaelduarte/gamesetup-backend/pkg/metrics"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	Metrics         *metrics.HTTPMetrics
	AuthService     auth.Service
	RegisterService auth.RegisterService
	GamesService    controllers.GamesService
	SetupsService   controllers.SetupsService
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(params.Metrics),
		middleware.CORS(),
	)

	r.Get("/health", controllers.Health(cfg))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(params.RegisterService, logg))
		r.Post("/login", controllers.AuthLogin(params.AuthService, logg))
	})

	r.Route("/games", func(r chi.Router) {
		// specific paths stay ahead of /{id}
		r.Get("/search", controllers.GamesSearch(params.GamesService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/my-setups", controllers.GamesMySetups(params.SetupsService, logg))
			r.Put("/setups/{setupId}", controllers.GamesUpdateSetup(params.SetupsService, logg))
			r.Delete("/setups/{setupId}", controllers.GamesDeleteSetup(params.SetupsService, logg))
			r.Post("/{id}/build", controllers.GamesBuild(params.SetupsService, logg))
			r.Post("/{id}/build-with-budget", controllers.GamesBuildWithBudget(params.SetupsService, logg))
		})

		r.Get("/{id}", controllers.GamesDetails(params.GamesService, logg))
	})

	return r
}
