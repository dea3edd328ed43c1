package rest

import (
	"errors"
	"net/http"

	"dsc/core"
	"dsc/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request, sandbox may be nil
func Handle(engine core.EngineService, sandbox core.SandboxService, events core.EventStore) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/params", paramsHandler(engine))
	router.Get("/assets", assetsHandler(engine))
	router.Get("/accounts", usersHandler(engine))
	router.Get("/accounts/{user}", accountHandler(engine, sandbox))
	router.Get("/convert/usd", usdValueHandler(engine))
	router.Get("/convert/amount", tokenAmountHandler(engine))
	router.Get("/events", eventsHandler(events))

	if sandbox != nil {
		router.Post("/actions/{action}", actionHandler(engine))
		router.Post("/faucet", faucetHandler(sandbox))
		router.Post("/feeds/{asset}", feedHandler(sandbox))
	}

	return router
}
