package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/render"
	"dsc/handler/views"

	"github.com/go-chi/chi"
)

func usersHandler(engine core.EngineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, engine.Users(r.Context()))
	}
}

func accountHandler(engine core.EngineService, sandbox core.SandboxService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := chi.URLParam(r, "user")

		info, err := engine.AccountInformation(ctx, user)
		if err != nil {
			render.Err(w, err)
			return
		}

		hf, err := engine.HealthFactor(ctx, user)
		if err != nil {
			render.Err(w, err)
			return
		}

		collaterals, err := engine.CollateralBalances(ctx, user)
		if err != nil {
			render.Err(w, err)
			return
		}

		var wallet []*core.CollateralBalance
		if sandbox != nil {
			wallet = sandbox.Wallet(ctx, user)
		}

		render.JSON(w, views.NewAccount(info, hf, collaterals, wallet))
	}
}
