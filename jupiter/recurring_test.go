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

const usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

func TestTimeRecurringOrderSerialization(t *testing.T) {
	order := NewTimeRecurringOrder(testUserPubkey, usdcMint, solMint, 100_000_000, 10, 86400).
		WithStartAt(1756166400).
		WithMinPrice(120.5)

	data, err := json.Marshal(order)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "params")

	var params map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["params"], &params))
	assert.Contains(t, params, "time")
	assert.NotContains(t, params, "price")

	assert.JSONEq(t, `{
		"inAmount": 100000000,
		"numberOfOrders": 10,
		"interval": 86400,
		"minPrice": 120.5,
		"startAt": 1756166400
	}`, string(params["time"]))
}

func TestPriceRecurringOrderSerialization(t *testing.T) {
	order := NewPriceRecurringOrder(testUserPubkey, usdcMint, solMint, 1_000_000_000, 100_000_000, 604800)

	data, err := json.Marshal(order)
	require.NoError(t, err)

	var raw struct {
		Params map[string]json.RawMessage `json:"params"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw.Params, "price")
	assert.NotContains(t, raw.Params, "time")
	assert.Contains(t, string(raw.Params["price"]), `"incrementUsdcValue":100000000`)
}

func TestCreateRecurringOrderValidation(t *testing.T) {
	client := NewClient("http://localhost:1")
	ctx := context.Background()

	_, err := client.CreateRecurringOrder(ctx, NewTimeRecurringOrder("", usdcMint, solMint, 1, 1, 1))
	assert.EqualError(t, err, "user is required")

	// Neither strategy set.
	order := &CreateRecurringOrder{User: testUserPubkey, InputMint: usdcMint, OutputMint: solMint}
	_, err = client.CreateRecurringOrder(ctx, order)
	assert.EqualError(t, err, "exactly one of time or price params is required")

	// Both strategies set.
	order.Params.Time = &TimeParams{InAmount: 1, NumberOfOrders: 1, Interval: 1}
	order.Params.Price = &PriceParams{DepositAmount: 1, IncrementUSDCValue: 1, Interval: 1}
	_, err = client.CreateRecurringOrder(ctx, order)
	assert.EqualError(t, err, "exactly one of time or price params is required")
}

func TestCreateRecurringOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/recurring/v1/createOrder", r.URL.Path)

		_, _ = w.Write([]byte(`{"requestId": "f3a1", "transaction": "AQAAAunsignedtx"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	res, err := client.CreateRecurringOrder(context.Background(),
		NewTimeRecurringOrder(testUserPubkey, usdcMint, solMint, 100_000_000, 10, 86400))
	require.NoError(t, err)
	assert.Equal(t, "f3a1", res.RequestID)
	assert.Equal(t, "AQAAAunsignedtx", res.Transaction)
}

func TestExecuteRecurringOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recurring/v1/execute", r.URL.Path)
		_, _ = w.Write([]byte(`{"signature": "3abc", "status": "Success"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	res, err := client.ExecuteRecurringOrder(context.Background(),
		&ExecuteRecurringOrder{RequestID: "f3a1", SignedTransaction: "AQAAAsignedtx"})
	require.NoError(t, err)
	assert.Equal(t, "Success", res.Status)

	_, err = client.ExecuteRecurringOrder(context.Background(),
		&ExecuteRecurringOrder{SignedTransaction: "tx"})
	assert.EqualError(t, err, "requestId is required")
}

func TestRecurringDepositAndWithdraw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recurring/v1/priceDeposit":
			var payload PriceDeposit
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, uint64(50_000_000), payload.Amount)
			_, _ = w.Write([]byte(`{"requestId": "d1", "transaction": "txd"}`))
		case "/recurring/v1/priceWithdraw":
			var payload PriceWithdraw
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "In", payload.InputOrOutput)
			_, _ = w.Write([]byte(`{"requestId": "w1", "transaction": "txw"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()

	res, err := client.PriceDeposit(ctx, &PriceDeposit{
		Amount: 50_000_000,
		Order:  "orderAccount111",
		User:   testUserPubkey,
	})
	require.NoError(t, err)
	assert.Equal(t, "txd", res.Transaction)

	res, err = client.PriceWithdraw(ctx, &PriceWithdraw{
		Order:         "orderAccount111",
		User:          testUserPubkey,
		InputOrOutput: "In",
	})
	require.NoError(t, err)
	assert.Equal(t, "txw", res.Transaction)

	_, err = client.PriceDeposit(ctx, &PriceDeposit{User: testUserPubkey})
	assert.EqualError(t, err, "order is required")
}

func TestGetRecurringOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recurring/v1/getRecurringOrders", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "time", q.Get("recurringType"))
		assert.Equal(t, "active", q.Get("orderStatus"))
		assert.Equal(t, testUserPubkey, q.Get("user"))
		assert.Equal(t, "1", q.Get("page"))

		_, _ = w.Write([]byte(`{
			"orderStatus": "active",
			"page": 1,
			"totalPages": 1,
			"user": "EXBdeRCdiNChKyD7akt64n9HgSXEpUtpPEhmbnm4L6iH",
			"time": [{"orderKey": "t1"}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	res, err := client.GetRecurringOrders(context.Background(),
		NewGetRecurringOrders(RecurringTypeTime, OrderStatusActive, testUserPubkey))
	require.NoError(t, err)
	assert.Equal(t, OrderStatusActive, res.OrderStatus)
	require.Len(t, res.Time, 1)
	assert.Empty(t, res.Price)

	_, err = client.GetRecurringOrders(context.Background(),
		NewGetRecurringOrders("weekly", OrderStatusActive, testUserPubkey))
	assert.EqualError(t, err, "recurringType must be time, price or all")

	_, err = client.GetRecurringOrders(context.Background(),
		NewGetRecurringOrders(RecurringTypeAll, "pending", testUserPubkey))
	assert.EqualError(t, err, "orderStatus must be active or history")

	_, err = client.GetRecurringOrders(context.Background(),
		NewGetRecurringOrders(RecurringTypeAll, "", testUserPubkey))
	assert.EqualError(t, err, "orderStatus must be active or history")
}
