package controllers

import (
	"net/http"
	"time"

	"github.com/rafaelduarte/gamesetup-backend/api/responses"
	"github.com/rafaelduarte/gamesetup-backend/pkg/config"
)

func Health(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GameSetup-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]any{
			"ok":   true,
			"time": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
