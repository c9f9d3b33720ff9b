package jupiter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// OrderStatus filters order listings.
type OrderStatus string

const (
	OrderStatusActive  OrderStatus = "active"
	OrderStatusHistory OrderStatus = "history"
)

// CreateTriggerOrder is the POST /trigger/v1/createOrder payload: a limit
// order that executes once the taking amount is reachable.
type CreateTriggerOrder struct {
	InputMint  string `json:"inputMint"`
	OutputMint string `json:"outputMint"`

	// Maker owns the order; Payer funds it. Usually the same wallet.
	Maker string `json:"maker"`
	Payer string `json:"payer"`

	Params TriggerOrderParams `json:"params"`

	// ComputeUnitPrice is micro-lamports, or "auto".
	ComputeUnitPrice string `json:"computeUnitPrice,omitempty"`
	FeeAccount       string `json:"feeAccount,omitempty"`
	WrapAndUnwrapSol *bool  `json:"wrapAndUnwrapSol,omitempty"`
}

// TriggerOrderParams sets the order's amounts in raw base units (as strings,
// matching the upstream schema).
type TriggerOrderParams struct {
	MakingAmount string `json:"makingAmount"`
	TakingAmount string `json:"takingAmount"`
	ExpiredAt    string `json:"expiredAt,omitempty"` // unix seconds
	SlippageBps  string `json:"slippageBps,omitempty"`
	FeeBps       string `json:"feeBps,omitempty"`
}

// NewCreateTriggerOrder returns a trigger order selling makingAmount of
// inputMint for takingAmount of outputMint, with maker paying for and owning
// the order.
func NewCreateTriggerOrder(inputMint, outputMint, maker string, makingAmount, takingAmount uint64) *CreateTriggerOrder {
	return &CreateTriggerOrder{
		InputMint:  inputMint,
		OutputMint: outputMint,
		Maker:      maker,
		Payer:      maker,
		Params: TriggerOrderParams{
			MakingAmount: strconv.FormatUint(makingAmount, 10),
			TakingAmount: strconv.FormatUint(takingAmount, 10),
		},
		ComputeUnitPrice: "auto",
	}
}

// WithExpiredAt sets a unix-seconds expiry on the order.
func (r *CreateTriggerOrder) WithExpiredAt(unixSeconds int64) *CreateTriggerOrder {
	r.Params.ExpiredAt = strconv.FormatInt(unixSeconds, 10)
	return r
}

// WithPayer funds the order from a wallet other than the maker.
func (r *CreateTriggerOrder) WithPayer(payer string) *CreateTriggerOrder {
	r.Payer = payer
	return r
}

// WithFeeAccount sets the referral token account collecting the fee.
func (r *CreateTriggerOrder) WithFeeAccount(account string) *CreateTriggerOrder {
	r.FeeAccount = account
	return r
}

func (r *CreateTriggerOrder) validate() error {
	if strings.TrimSpace(r.InputMint) == "" {
		return fmt.Errorf("inputMint is required")
	}
	if strings.TrimSpace(r.OutputMint) == "" {
		return fmt.Errorf("outputMint is required")
	}
	if strings.TrimSpace(r.Maker) == "" {
		return fmt.Errorf("maker is required")
	}
	return nil
}

// ExecuteTriggerOrder is the POST /trigger/v1/execute payload: a signed
// create or cancel transaction plus the request id it belongs to.
type ExecuteTriggerOrder struct {
	RequestID         string `json:"requestId"`
	SignedTransaction string `json:"signedTransaction"`
}

// NewExecuteTriggerOrder pairs a signed base64 transaction with its request
// id.
func NewExecuteTriggerOrder(requestID, signedTransaction string) *ExecuteTriggerOrder {
	return &ExecuteTriggerOrder{RequestID: requestID, SignedTransaction: signedTransaction}
}

// CancelTriggerOrder is the POST /trigger/v1/cancelOrder payload.
type CancelTriggerOrder struct {
	Maker string `json:"maker"`
	Order string `json:"order"` // order account address

	ComputeUnitPrice string `json:"computeUnitPrice,omitempty"`
}

// NewCancelTriggerOrder returns a cancellation for one order account.
func NewCancelTriggerOrder(maker, order string) *CancelTriggerOrder {
	return &CancelTriggerOrder{Maker: maker, Order: order, ComputeUnitPrice: "auto"}
}

// CancelTriggerOrders is the POST /trigger/v1/cancelOrders payload. With no
// orders listed, upstream cancels all of the maker's orders.
type CancelTriggerOrders struct {
	Maker  string   `json:"maker"`
	Orders []string `json:"orders,omitempty"`

	ComputeUnitPrice string `json:"computeUnitPrice,omitempty"`
}

// NewCancelTriggerOrders returns a batched cancellation.
func NewCancelTriggerOrders(maker string, orders ...string) *CancelTriggerOrders {
	return &CancelTriggerOrders{Maker: maker, Orders: orders, ComputeUnitPrice: "auto"}
}

// TriggerResponse is the shared response of the trigger mutation endpoints.
// Create and cancel return an unsigned transaction to sign and pass to
// ExecuteTriggerOrder; execute returns the signature and status.
type TriggerResponse struct {
	RequestID string `json:"requestId,omitempty"`

	// Transaction is a base64-encoded unsigned transaction; Transactions is
	// set by cancelOrders when several are needed.
	Transaction  string   `json:"transaction,omitempty"`
	Transactions []string `json:"transactions,omitempty"`

	// Order is the order account created by createOrder.
	Order string `json:"order,omitempty"`

	Signature string `json:"signature,omitempty"`
	Status    string `json:"status,omitempty"`
	Code      int    `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
}

// GetTriggerOrders holds the query for GET /trigger/v1/getTriggerOrders.
type GetTriggerOrders struct {
	User        string
	OrderStatus OrderStatus

	Page            uint64
	IncludeFailedTx bool
	InputMint       string
	OutputMint      string
}

// NewGetTriggerOrders lists a user's orders with the given status. Pages
// start at 1.
func NewGetTriggerOrders(user string, status OrderStatus) *GetTriggerOrders {
	return &GetTriggerOrders{User: user, OrderStatus: status, Page: 1}
}

// WithPage selects a result page.
func (r *GetTriggerOrders) WithPage(page uint64) *GetTriggerOrders {
	r.Page = page
	return r
}

// WithMints filters by input and/or output mint; pass "" to skip one side.
func (r *GetTriggerOrders) WithMints(inputMint, outputMint string) *GetTriggerOrders {
	r.InputMint = inputMint
	r.OutputMint = outputMint
	return r
}

// IncludeFailed includes failed transactions in history results.
func (r *GetTriggerOrders) IncludeFailed() *GetTriggerOrders {
	r.IncludeFailedTx = true
	return r
}

func (r *GetTriggerOrders) validate() error {
	if strings.TrimSpace(r.User) == "" {
		return fmt.Errorf("user is required")
	}
	if r.OrderStatus != OrderStatusActive && r.OrderStatus != OrderStatusHistory {
		return fmt.Errorf("orderStatus must be active or history")
	}
	return nil
}

func (r *GetTriggerOrders) queryValues() url.Values {
	q := url.Values{}
	q.Set("user", r.User)
	q.Set("orderStatus", string(r.OrderStatus))
	if r.Page > 0 {
		q.Set("page", strconv.FormatUint(r.Page, 10))
	}
	if r.IncludeFailedTx {
		q.Set("includeFailedTx", "true")
	}
	if r.InputMint != "" {
		q.Set("inputMint", r.InputMint)
	}
	if r.OutputMint != "" {
		q.Set("outputMint", r.OutputMint)
	}
	return q
}

// TriggerOrdersResponse is the GET /trigger/v1/getTriggerOrders response.
// Order payloads are version-fluid upstream, so they are carried raw.
type TriggerOrdersResponse struct {
	User        string            `json:"user"`
	OrderStatus OrderStatus       `json:"orderStatus"`
	Orders      []json.RawMessage `json:"orders"`
	Page        uint64            `json:"page"`
	TotalPages  uint64            `json:"totalPages"`
}

// CreateTriggerOrder requests an unsigned transaction creating a trigger
// order. Sign it and pass it to ExecuteTriggerOrder.
func (c *Client) CreateTriggerOrder(ctx context.Context, req *CreateTriggerOrder) (*TriggerResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var out TriggerResponse
	if err := c.postJSON(ctx, "/trigger/v1/createOrder", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExecuteTriggerOrder submits a signed trigger transaction.
func (c *Client) ExecuteTriggerOrder(ctx context.Context, req *ExecuteTriggerOrder) (*TriggerResponse, error) {
	if strings.TrimSpace(req.RequestID) == "" {
		return nil, fmt.Errorf("requestId is required")
	}
	if strings.TrimSpace(req.SignedTransaction) == "" {
		return nil, fmt.Errorf("signedTransaction is required")
	}

	var out TriggerResponse
	if err := c.postJSON(ctx, "/trigger/v1/execute", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelTriggerOrder requests an unsigned transaction cancelling one trigger
// order. Sign it and pass it to ExecuteTriggerOrder.
func (c *Client) CancelTriggerOrder(ctx context.Context, req *CancelTriggerOrder) (*TriggerResponse, error) {
	if strings.TrimSpace(req.Maker) == "" {
		return nil, fmt.Errorf("maker is required")
	}
	if strings.TrimSpace(req.Order) == "" {
		return nil, fmt.Errorf("order is required")
	}

	var out TriggerResponse
	if err := c.postJSON(ctx, "/trigger/v1/cancelOrder", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelTriggerOrders requests unsigned transactions cancelling several (or
// all) of a maker's trigger orders.
func (c *Client) CancelTriggerOrders(ctx context.Context, req *CancelTriggerOrders) (*TriggerResponse, error) {
	if strings.TrimSpace(req.Maker) == "" {
		return nil, fmt.Errorf("maker is required")
	}

	var out TriggerResponse
	if err := c.postJSON(ctx, "/trigger/v1/cancelOrders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTriggerOrders lists a user's trigger orders.
func (c *Client) GetTriggerOrders(ctx context.Context, req *GetTriggerOrders) (*TriggerOrdersResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var out TriggerOrdersResponse
	if err := c.getJSON(ctx, "/trigger/v1/getTriggerOrders", req.queryValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
