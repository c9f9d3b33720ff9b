package jupiter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// RecurringOrderType distinguishes the two recurring strategies. TypeAll is
// only valid when listing orders.
type RecurringOrderType string

const (
	RecurringTypeTime  RecurringOrderType = "time"
	RecurringTypePrice RecurringOrderType = "price"
	RecurringTypeAll   RecurringOrderType = "all"
)

// CreateRecurringOrder is the POST /recurring/v1/createOrder payload. Exactly
// one of Params.Time or Params.Price is set.
type CreateRecurringOrder struct {
	User       string `json:"user"`
	InputMint  string `json:"inputMint"`
	OutputMint string `json:"outputMint"`

	Params RecurringOrderParams `json:"params"`
}

// RecurringOrderParams wraps the strategy-specific parameters. The upstream
// schema is an untagged union keyed by which field is present.
type RecurringOrderParams struct {
	Time  *TimeParams  `json:"time,omitempty"`
	Price *PriceParams `json:"price,omitempty"`
}

// TimeParams configures a DCA-style order: InAmount split over
// NumberOfOrders buys, Interval seconds apart.
type TimeParams struct {
	InAmount       uint64   `json:"inAmount"`
	NumberOfOrders uint64   `json:"numberOfOrders"`
	Interval       uint64   `json:"interval"` // seconds
	MinPrice       *float64 `json:"minPrice,omitempty"`
	MaxPrice       *float64 `json:"maxPrice,omitempty"`
	StartAt        *uint64  `json:"startAt,omitempty"` // unix seconds
}

// PriceParams configures a value-averaging order: buy IncrementUSDCValue
// worth every Interval seconds out of DepositAmount.
type PriceParams struct {
	DepositAmount      uint64  `json:"depositAmount"`
	IncrementUSDCValue uint64  `json:"incrementUsdcValue"`
	Interval           uint64  `json:"interval"` // seconds
	StartAt            *uint64 `json:"startAt,omitempty"`
}

// NewTimeRecurringOrder returns a time-based recurring order.
func NewTimeRecurringOrder(user, inputMint, outputMint string, inAmount, numberOfOrders, interval uint64) *CreateRecurringOrder {
	return &CreateRecurringOrder{
		User:       user,
		InputMint:  inputMint,
		OutputMint: outputMint,
		Params: RecurringOrderParams{
			Time: &TimeParams{
				InAmount:       inAmount,
				NumberOfOrders: numberOfOrders,
				Interval:       interval,
			},
		},
	}
}

// NewPriceRecurringOrder returns a price-based recurring order.
func NewPriceRecurringOrder(user, inputMint, outputMint string, depositAmount, incrementUSDCValue, interval uint64) *CreateRecurringOrder {
	return &CreateRecurringOrder{
		User:       user,
		InputMint:  inputMint,
		OutputMint: outputMint,
		Params: RecurringOrderParams{
			Price: &PriceParams{
				DepositAmount:      depositAmount,
				IncrementUSDCValue: incrementUSDCValue,
				Interval:           interval,
			},
		},
	}
}

// WithStartAt delays the first execution to a unix timestamp.
func (r *CreateRecurringOrder) WithStartAt(unixSeconds uint64) *CreateRecurringOrder {
	switch {
	case r.Params.Time != nil:
		r.Params.Time.StartAt = &unixSeconds
	case r.Params.Price != nil:
		r.Params.Price.StartAt = &unixSeconds
	}
	return r
}

// WithMinPrice bounds time-based orders from below. No-op for price orders.
func (r *CreateRecurringOrder) WithMinPrice(price float64) *CreateRecurringOrder {
	if r.Params.Time != nil {
		r.Params.Time.MinPrice = &price
	}
	return r
}

// WithMaxPrice bounds time-based orders from above. No-op for price orders.
func (r *CreateRecurringOrder) WithMaxPrice(price float64) *CreateRecurringOrder {
	if r.Params.Time != nil {
		r.Params.Time.MaxPrice = &price
	}
	return r
}

func (r *CreateRecurringOrder) validate() error {
	if strings.TrimSpace(r.User) == "" {
		return fmt.Errorf("user is required")
	}
	if strings.TrimSpace(r.InputMint) == "" {
		return fmt.Errorf("inputMint is required")
	}
	if strings.TrimSpace(r.OutputMint) == "" {
		return fmt.Errorf("outputMint is required")
	}
	if (r.Params.Time == nil) == (r.Params.Price == nil) {
		return fmt.Errorf("exactly one of time or price params is required")
	}
	return nil
}

// RecurringResponse is returned by the recurring mutation endpoints: an
// unsigned base64 transaction plus the request id for ExecuteRecurringOrder.
type RecurringResponse struct {
	RequestID   string `json:"requestId"`
	Transaction string `json:"transaction"`
}

// ExecuteRecurringOrder is the POST /recurring/v1/execute payload.
type ExecuteRecurringOrder struct {
	RequestID         string `json:"requestId"`
	SignedTransaction string `json:"signedTransaction"`
}

// ExecuteRecurringResponse reports the landed signature.
type ExecuteRecurringResponse struct {
	Signature string `json:"signature"`
	Status    string `json:"status"`

	Error string `json:"error,omitempty"`
}

// CancelRecurringOrder is the POST /recurring/v1/cancelOrder payload.
type CancelRecurringOrder struct {
	Order         string             `json:"order"`
	RecurringType RecurringOrderType `json:"recurringType"`
	User          string             `json:"user"`
}

// NewCancelRecurringOrder returns a cancellation for one recurring order
// account.
func NewCancelRecurringOrder(order string, recurringType RecurringOrderType, user string) *CancelRecurringOrder {
	return &CancelRecurringOrder{Order: order, RecurringType: recurringType, User: user}
}

// PriceDeposit is the POST /recurring/v1/priceDeposit payload: tops up a
// price-based order.
type PriceDeposit struct {
	Amount uint64 `json:"amount"`
	Order  string `json:"order"`
	User   string `json:"user"`
}

// PriceWithdraw is the POST /recurring/v1/priceWithdraw payload.
type PriceWithdraw struct {
	Amount uint64 `json:"amount"`
	Order  string `json:"order"`
	User   string `json:"user"`

	// InputOrOutput selects which side to withdraw: "In" or "Out".
	InputOrOutput string `json:"inputOrOutput"`
}

// GetRecurringOrders holds the query for GET /recurring/v1/getRecurringOrders.
type GetRecurringOrders struct {
	RecurringType RecurringOrderType
	OrderStatus   OrderStatus
	User          string

	Page            uint64
	Mint            string
	IncludeFailedTx bool
}

// NewGetRecurringOrders lists a user's recurring orders. Pages start at 1.
func NewGetRecurringOrders(recurringType RecurringOrderType, status OrderStatus, user string) *GetRecurringOrders {
	return &GetRecurringOrders{
		RecurringType: recurringType,
		OrderStatus:   status,
		User:          user,
		Page:          1,
	}
}

// WithPage selects a result page.
func (r *GetRecurringOrders) WithPage(page uint64) *GetRecurringOrders {
	r.Page = page
	return r
}

// WithMint filters by a specific mint.
func (r *GetRecurringOrders) WithMint(mint string) *GetRecurringOrders {
	r.Mint = mint
	return r
}

// IncludeFailed includes failed transactions in history results.
func (r *GetRecurringOrders) IncludeFailed() *GetRecurringOrders {
	r.IncludeFailedTx = true
	return r
}

func (r *GetRecurringOrders) validate() error {
	if strings.TrimSpace(r.User) == "" {
		return fmt.Errorf("user is required")
	}
	switch r.RecurringType {
	case RecurringTypeTime, RecurringTypePrice, RecurringTypeAll:
	default:
		return fmt.Errorf("recurringType must be time, price or all")
	}
	if r.OrderStatus != OrderStatusActive && r.OrderStatus != OrderStatusHistory {
		return fmt.Errorf("orderStatus must be active or history")
	}
	return nil
}

func (r *GetRecurringOrders) queryValues() url.Values {
	q := url.Values{}
	q.Set("recurringType", string(r.RecurringType))
	q.Set("orderStatus", string(r.OrderStatus))
	q.Set("user", r.User)
	if r.Page > 0 {
		q.Set("page", strconv.FormatUint(r.Page, 10))
	}
	if r.Mint != "" {
		q.Set("mint", r.Mint)
	}
	if r.IncludeFailedTx {
		q.Set("includeFailedTx", "true")
	}
	return q
}

// RecurringOrdersResponse is the GET /recurring/v1/getRecurringOrders
// response. Order payloads are carried raw; Time/Price/All mirror the
// requested recurring type.
type RecurringOrdersResponse struct {
	OrderStatus OrderStatus `json:"orderStatus"`
	Page        uint64      `json:"page"`
	TotalPages  uint64      `json:"totalPages"`
	User        string      `json:"user"`

	Time  []json.RawMessage `json:"time,omitempty"`
	Price []json.RawMessage `json:"price,omitempty"`
	All   []json.RawMessage `json:"all,omitempty"`
}

// CreateRecurringOrder requests an unsigned transaction creating a recurring
// order. Sign it and pass it to ExecuteRecurringOrder.
func (c *Client) CreateRecurringOrder(ctx context.Context, req *CreateRecurringOrder) (*RecurringResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var out RecurringResponse
	if err := c.postJSON(ctx, "/recurring/v1/createOrder", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExecuteRecurringOrder submits a signed recurring transaction.
func (c *Client) ExecuteRecurringOrder(ctx context.Context, req *ExecuteRecurringOrder) (*ExecuteRecurringResponse, error) {
	if strings.TrimSpace(req.RequestID) == "" {
		return nil, fmt.Errorf("requestId is required")
	}
	if strings.TrimSpace(req.SignedTransaction) == "" {
		return nil, fmt.Errorf("signedTransaction is required")
	}

	var out ExecuteRecurringResponse
	if err := c.postJSON(ctx, "/recurring/v1/execute", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelRecurringOrder requests an unsigned transaction cancelling a
// recurring order.
func (c *Client) CancelRecurringOrder(ctx context.Context, req *CancelRecurringOrder) (*RecurringResponse, error) {
	if strings.TrimSpace(req.Order) == "" {
		return nil, fmt.Errorf("order is required")
	}
	if strings.TrimSpace(req.User) == "" {
		return nil, fmt.Errorf("user is required")
	}

	var out RecurringResponse
	if err := c.postJSON(ctx, "/recurring/v1/cancelOrder", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PriceDeposit requests an unsigned transaction depositing into a price-based
// recurring order.
func (c *Client) PriceDeposit(ctx context.Context, req *PriceDeposit) (*RecurringResponse, error) {
	if strings.TrimSpace(req.Order) == "" {
		return nil, fmt.Errorf("order is required")
	}

	var out RecurringResponse
	if err := c.postJSON(ctx, "/recurring/v1/priceDeposit", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PriceWithdraw requests an unsigned transaction withdrawing from a
// price-based recurring order. A zero Amount withdraws everything.
func (c *Client) PriceWithdraw(ctx context.Context, req *PriceWithdraw) (*RecurringResponse, error) {
	if strings.TrimSpace(req.Order) == "" {
		return nil, fmt.Errorf("order is required")
	}

	var out RecurringResponse
	if err := c.postJSON(ctx, "/recurring/v1/priceWithdraw", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecurringOrders lists a user's recurring orders.
func (c *Client) GetRecurringOrders(ctx context.Context, req *GetRecurringOrders) (*RecurringOrdersResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var out RecurringOrdersResponse
	if err := c.getJSON(ctx, "/recurring/v1/getRecurringOrders", req.queryValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
