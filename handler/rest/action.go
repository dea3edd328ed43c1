package rest

import (
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"
	"dsc/pkg/number"

	"github.com/go-chi/chi"
	"github.com/holiman/uint256"
)

const (
	actionDeposit        = "deposit"
	actionRedeem         = "redeem"
	actionMint           = "mint"
	actionBurn           = "burn"
	actionDepositAndMint = "deposit-and-mint"
	actionRedeemForBurn  = "redeem-for-burn"
	actionLiquidate      = "liquidate"
)

type actionParams struct {
	User       string `json:"user" valid:"required"`
	Asset      string `json:"asset"`
	Amount     string `json:"amount"`
	Debt       string `json:"debt"`
	Liquidator string `json:"liquidator"`
}

// parseAmount empty means zero
func parseAmount(v string) (*uint256.Int, error) {
	if v == "" {
		return new(uint256.Int), nil
	}

	return number.ParseFixed(v)
}

func actionHandler(engine core.EngineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params actionParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		debt, err := parseAmount(params.Debt)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		asset := core.Asset(params.Asset)
		switch action := chi.URLParam(r, "action"); action {
		case actionDeposit:
			err = engine.DepositCollateral(ctx, params.User, asset, amount)
		case actionRedeem:
			err = engine.RedeemCollateral(ctx, params.User, asset, amount)
		case actionMint:
			err = engine.MintDebt(ctx, params.User, debt)
		case actionBurn:
			err = engine.BurnDebt(ctx, params.User, debt)
		case actionDepositAndMint:
			err = engine.DepositCollateralAndMintDebt(ctx, params.User, asset, amount, debt)
		case actionRedeemForBurn:
			err = engine.RedeemCollateralForDebt(ctx, params.User, asset, amount, debt)
		case actionLiquidate:
			if params.Liquidator == "" {
				render.BadRequest(w, errors.New("liquidator required"))
				return
			}

			err = engine.Liquidate(ctx, params.Liquidator, asset, params.User, debt)
		default:
			render.NotFoundRequest(w, fmt.Errorf("unknown action %s", action))
			return
		}

		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func faucetHandler(sandbox core.SandboxService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			User   string `json:"user" valid:"required"`
			Asset  string `json:"asset" valid:"required"`
			Amount string `json:"amount" valid:"required,float"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := number.ParseFixed(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := sandbox.Faucet(r.Context(), params.User, core.Asset(params.Asset), amount); err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func feedHandler(sandbox core.SandboxService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Answer string `json:"answer" valid:"required,int"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		answer, ok := new(big.Int).SetString(params.Answer, 10)
		if !ok {
			render.BadRequest(w, errors.New("invalid answer"))
			return
		}

		asset := core.Asset(chi.URLParam(r, "asset"))
		if err := sandbox.SetPrice(r.Context(), asset, answer); err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}
