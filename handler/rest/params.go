package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"
	"dsc/pkg/number"
)

func paramsHandler(engine core.EngineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, views.Params{
			EngineAddress:        engine.Address(),
			DebtToken:            engine.DebtToken().Asset(),
			Assets:               engine.CollateralTokens(),
			Precision:            engine.Precision().Dec(),
			MinHealthFactor:      number.FromFixed(engine.MinHealthFactor()),
			LiquidationThreshold: engine.LiquidationThreshold(),
			LiquidationBonus:     engine.LiquidationBonus(),
		})
	}
}

func assetsHandler(engine core.EngineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		assets := engine.CollateralTokens()
		items := make([]*views.Asset, 0, len(assets))
		for _, asset := range assets {
			src, err := engine.PriceFeed(asset)
			if err != nil {
				render.Err(w, err)
				return
			}

			item := &views.Asset{
				Asset:    asset,
				Feed:     src.Description(),
				Decimals: src.Decimals(),
			}

			if price, err := engine.USDValue(ctx, asset, engine.Precision()); err != nil {
				item.PriceError = err.Error()
			} else {
				v := number.FromFixed(price)
				item.Price = &v
			}

			items = append(items, item)
		}

		render.JSON(w, items)
	}
}

func usdValueHandler(engine core.EngineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
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

		usd, err := engine.USDValue(r.Context(), core.Asset(params.Asset), amount)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.Conversion{
			Asset:  core.Asset(params.Asset),
			Amount: number.FromFixed(amount),
			USD:    number.FromFixed(usd),
		})
	}
}

func tokenAmountHandler(engine core.EngineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Asset string `json:"asset" valid:"required"`
			USD   string `json:"usd" valid:"required,float"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		usd, err := number.ParseFixed(params.USD)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := engine.TokenAmountFromUSD(r.Context(), core.Asset(params.Asset), usd)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.JSON(w, views.Conversion{
			Asset:  core.Asset(params.Asset),
			Amount: number.FromFixed(amount),
			USD:    number.FromFixed(usd),
		})
	}
}
