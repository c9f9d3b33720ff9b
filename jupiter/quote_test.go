package jupiter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	solMint        = "So11111111111111111111111111111111111111112"
	jupMint        = "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN"
	testUserPubkey = "EXBdeRCdiNChKyD7akt64n9HgSXEpUtpPEhmbnm4L6iH"
)

// sampleQuoteJSON is a captured /swap/v1/quote response.
const sampleQuoteJSON = `{
	"inputMint": "So11111111111111111111111111111111111111112",
	"inAmount": "1000000",
	"outputMint": "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN",
	"outAmount": "125630",
	"otherAmountThreshold": "113067",
	"swapMode": "ExactIn",
	"slippageBps": 1000,
	"platformFee": null,
	"priceImpactPct": "0",
	"routePlan": [
		{
			"swapInfo": {
				"ammKey": "5y2QYKY8gQCcmG6jy4fc7wFg8L5SW7bkyvMH3jUTqBdy",
				"label": "Whirlpool",
				"inputMint": "So11111111111111111111111111111111111111112",
				"outputMint": "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN",
				"inAmount": "1000000",
				"outAmount": "125630",
				"feeAmount": "490",
				"feeMint": "So11111111111111111111111111111111111111112"
			},
			"percent": 100
		}
	],
	"contextSlot": 299283763,
	"timeTaken": 0.001791663,
	"swapUsdValue": "0.2340412537"
}`

func TestQuoteRequestQueryValues(t *testing.T) {
	req := NewQuoteRequest(solMint, jupMint, 1_000_000)

	q := req.queryValues()
	assert.Equal(t, solMint, q.Get("inputMint"))
	assert.Equal(t, jupMint, q.Get("outputMint"))
	assert.Equal(t, "1000000", q.Get("amount"))

	// Unset optionals are omitted entirely.
	assert.Len(t, q, 3)
}

func TestQuoteRequestBuilderMethods(t *testing.T) {
	req := NewQuoteRequest(solMint, jupMint, 1_000_000_000).
		WithSlippageBps(100).
		WithSwapMode(SwapModeExactOut).
		WithDexes("Orca", "Meteora DLMM").
		WithExcludeDexes("Raydium").
		WithRestrictIntermediateTokens(false).
		WithOnlyDirectRoutes(true).
		WithAsLegacyTransaction(false).
		WithPlatformFeeBps(10).
		WithMaxAccounts(64).
		WithDynamicSlippage(true)

	q := req.queryValues()
	assert.Equal(t, "100", q.Get("slippageBps"))
	assert.Equal(t, "ExactOut", q.Get("swapMode"))
	assert.Equal(t, "Orca,Meteora DLMM", q.Get("dexes"))
	assert.Equal(t, "Raydium", q.Get("excludeDexes"))
	assert.Equal(t, "false", q.Get("restrictIntermediateTokens"))
	assert.Equal(t, "true", q.Get("onlyDirectRoutes"))
	assert.Equal(t, "false", q.Get("asLegacyTransaction"))
	assert.Equal(t, "10", q.Get("platformFeeBps"))
	assert.Equal(t, "64", q.Get("maxAccounts"))
	assert.Equal(t, "true", q.Get("dynamicSlippage"))
}

func TestQuoteRequestValidation(t *testing.T) {
	client := NewClient("http://localhost:1")
	ctx := context.Background()

	_, err := client.GetQuote(ctx, NewQuoteRequest("", jupMint, 1))
	assert.EqualError(t, err, "inputMint is required")

	_, err = client.GetQuote(ctx, NewQuoteRequest(solMint, "", 1))
	assert.EqualError(t, err, "outputMint is required")

	_, err = client.GetQuote(ctx, NewQuoteRequest(solMint, jupMint, 0))
	assert.EqualError(t, err, "amount is required")
}

func TestQuoteResponseRoundTrip(t *testing.T) {
	var quote QuoteResponse
	require.NoError(t, json.Unmarshal([]byte(sampleQuoteJSON), &quote))

	assert.Equal(t, solMint, quote.InputMint)
	assert.Equal(t, jupMint, quote.OutputMint)
	assert.Equal(t, "1000000", quote.InAmount)
	assert.Equal(t, "125630", quote.OutAmount)
	assert.Equal(t, SwapModeExactIn, quote.SwapMode)
	assert.Equal(t, int32(1000), quote.SlippageBps)
	require.Len(t, quote.RoutePlan, 1)
	assert.Equal(t, "Whirlpool", quote.RoutePlan[0].SwapInfo.Label)
	assert.Equal(t, int32(100), quote.RoutePlan[0].Percent)
	assert.Equal(t, uint64(299283763), quote.ContextSlot)
	assert.Equal(t, "0.2340412537", quote.SwapUSDValue)

	// Re-serializing must preserve every documented field.
	out, err := json.Marshal(&quote)
	require.NoError(t, err)

	var again QuoteResponse
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, quote, again)
}

func TestGetQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/swap/v1/quote", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		q := r.URL.Query()
		assert.Equal(t, solMint, q.Get("inputMint"))
		assert.Equal(t, jupMint, q.Get("outputMint"))
		assert.Equal(t, "1000000", q.Get("amount"))
		assert.Equal(t, "1000", q.Get("slippageBps"))
		assert.Equal(t, "ExactIn", q.Get("swapMode"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleQuoteJSON))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	// Swapping 1,000,000 base units at 1000 bps slippage.
	req := NewQuoteRequest(solMint, jupMint, 1_000_000).
		WithSlippageBps(1000).
		WithSwapMode(SwapModeExactIn)

	quote, err := client.GetQuote(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, req.InputMint, quote.InputMint)
	assert.Equal(t, req.OutputMint, quote.OutputMint)
	assert.Equal(t, SwapModeExactIn, quote.SwapMode)
	assert.Equal(t, int32(1000), quote.SlippageBps)
}

func TestGetQuoteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Could not find any route"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	_, err := client.GetQuote(context.Background(), NewQuoteRequest(solMint, jupMint, 1))
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Contains(t, string(httpErr.Body), "Could not find any route")
	assert.Contains(t, httpErr.Error(), "jupiter http 400")
}

func TestGetQuoteMalformedJSON(t *testing.T) {
	for name, body := range map[string]string{
		"malformed": `{"inputMint": `,
		"empty":     ``,
		"wrongType": `{"slippageBps": "not a number"}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL)
			_, err := client.GetQuote(context.Background(), NewQuoteRequest(solMint, jupMint, 1))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to decode jupiter response")
		})
	}
}
