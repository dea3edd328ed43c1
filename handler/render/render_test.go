package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dsc/core"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErr(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{core.ErrAmountMustBeMoreThanZero, http.StatusBadRequest, 100100},
		{&core.HealthFactorError{Code: core.ErrBreaksHealthFactor, Factor: uint256.NewInt(1)}, http.StatusUnprocessableEntity, 100300},
		{&core.PriceError{Code: core.ErrStalePrice, Asset: "weth"}, http.StatusServiceUnavailable, 100400},
		{fmt.Errorf("wrapped: %w", core.ErrReentrantCall), http.StatusConflict, 100600},
		{errors.New("boom"), http.StatusInternalServerError, 100000},
	}

	for _, c := range cases {
		t.Run(c.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			Err(w, c.err)
			assert.Equal(t, c.status, w.Code)

			var body struct {
				Code int    `json:"code"`
				Msg  string `json:"msg"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, c.code, body.Code)
			assert.Equal(t, c.err.Error(), body.Msg)
		})
	}
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, H{"ok": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}
