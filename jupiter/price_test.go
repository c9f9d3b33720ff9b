package jupiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenPriceRequestQueryValues(t *testing.T) {
	q := NewTokenPriceRequest(solMint, jupMint).queryValues()
	assert.Equal(t, solMint+","+jupMint, q.Get("ids"))
	assert.Len(t, q, 1)

	q = NewTokenPriceRequest(jupMint).
		WithVsToken(solMint).
		WithShowExtraInfo(true).
		queryValues()
	assert.Equal(t, jupMint, q.Get("ids"))
	assert.Equal(t, solMint, q.Get("vsToken"))
	assert.Equal(t, "true", q.Get("showExtraInfo"))
}

func TestGetTokenPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/price/v2", r.URL.Path)
		assert.Equal(t, solMint, r.URL.Query().Get("ids"))

		_, _ = w.Write([]byte(`{
			"data": {
				"So11111111111111111111111111111111111111112": {
					"id": "So11111111111111111111111111111111111111112",
					"type": "derivedPrice",
					"price": "133.890945000"
				}
			},
			"timeTaken": 0.003
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	res, err := client.GetTokenPrice(context.Background(), NewTokenPriceRequest(solMint))
	require.NoError(t, err)
	price, ok := res.Data[solMint]
	require.True(t, ok)
	assert.Equal(t, "derivedPrice", price.Type)
	assert.Equal(t, "133.890945000", price.Price)
	assert.Nil(t, price.ExtraInfo)
}

func TestGetTokenPriceRequiresMints(t *testing.T) {
	client := NewClient("http://localhost:1")

	_, err := client.GetTokenPrice(context.Background(), NewTokenPriceRequest())
	assert.EqualError(t, err, "at least one mint is required")
}
