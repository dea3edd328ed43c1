package hc

import (
	"net/http"
	"time"

	"dsc/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle handle hc request, fingerprint identifies the collateral registry served
func Handle(ver, fingerprint string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, fingerprint))
	return r
}

func handle(version, fingerprint string) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(b).Truncate(time.Millisecond)
		render.JSON(w, render.H{
			"uptime":   uptime.String(),
			"version":  version,
			"registry": fingerprint,
		})
	}
}
