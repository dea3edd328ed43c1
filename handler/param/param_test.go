package param

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type convertParams struct {
	Asset  string `json:"asset" valid:"required"`
	Amount string `json:"amount" valid:"required,float"`
}

func TestBindingQuery(t *testing.T) {
	var params convertParams
	r := httptest.NewRequest(http.MethodGet, "/convert/usd?asset=weth&amount=1.5&other=1", nil)
	require.NoError(t, Binding(r, &params))
	assert.Equal(t, "weth", params.Asset)
	assert.Equal(t, "1.5", params.Amount)

	r = httptest.NewRequest(http.MethodGet, "/convert/usd?asset=weth&amount=abc", nil)
	assert.Error(t, Binding(r, &convertParams{}))

	r = httptest.NewRequest(http.MethodGet, "/convert/usd?amount=1", nil)
	assert.Error(t, Binding(r, &convertParams{}))
}

func TestBindingBody(t *testing.T) {
	var params convertParams
	r := httptest.NewRequest(http.MethodPost, "/faucet", strings.NewReader(`{"asset":"weth","amount":"10"}`))
	require.NoError(t, Binding(r, &params))
	assert.Equal(t, "10", params.Amount)

	r = httptest.NewRequest(http.MethodPost, "/faucet", strings.NewReader(`{"asset":`))
	assert.Error(t, Binding(r, &convertParams{}))
}
