package jupiter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// UltraOrderRequest holds the parameters for GET /ultra/v1/order. Ultra is
// Jupiter's managed execution flow: the response already contains an unsigned
// transaction when a taker is provided.
type UltraOrderRequest struct {
	InputMint  string
	OutputMint string
	Amount     uint64 // raw base units, before decimals

	// Taker is the user's wallet. Without it the order still quotes, but
	// carries no transaction.
	Taker string

	ReferralAccount string
	ReferralFee     *uint8 // bps, upstream accepts 50..255

	ExcludeRouters []string
	ExcludeDexes   []string
	SlippageBps    *uint16
}

// NewUltraOrderRequest returns an order request for swapping amount base
// units of inputMint into outputMint.
func NewUltraOrderRequest(inputMint, outputMint string, amount uint64) *UltraOrderRequest {
	return &UltraOrderRequest{
		InputMint:  inputMint,
		OutputMint: outputMint,
		Amount:     amount,
	}
}

// WithTaker sets the wallet that will sign the order transaction.
func (r *UltraOrderRequest) WithTaker(taker string) *UltraOrderRequest {
	r.Taker = taker
	return r
}

// WithReferral attaches a referral account and its fee in basis points.
func (r *UltraOrderRequest) WithReferral(account string, feeBps uint8) *UltraOrderRequest {
	r.ReferralAccount = account
	r.ReferralFee = &feeBps
	return r
}

// WithExcludeRouters removes the named Ultra routers (e.g. "metis", "rfq")
// from consideration.
func (r *UltraOrderRequest) WithExcludeRouters(routers ...string) *UltraOrderRequest {
	r.ExcludeRouters = routers
	return r
}

// WithExcludeDexes removes the named DEXes from aggregator routing.
func (r *UltraOrderRequest) WithExcludeDexes(dexes ...string) *UltraOrderRequest {
	r.ExcludeDexes = dexes
	return r
}

// WithSlippageBps overrides Ultra's automatic slippage estimation.
func (r *UltraOrderRequest) WithSlippageBps(bps uint16) *UltraOrderRequest {
	r.SlippageBps = &bps
	return r
}

func (r *UltraOrderRequest) validate() error {
	if strings.TrimSpace(r.InputMint) == "" {
		return fmt.Errorf("inputMint is required")
	}
	if strings.TrimSpace(r.OutputMint) == "" {
		return fmt.Errorf("outputMint is required")
	}
	if r.Amount == 0 {
		return fmt.Errorf("amount is required")
	}
	return nil
}

func (r *UltraOrderRequest) queryValues() url.Values {
	q := url.Values{}
	q.Set("inputMint", r.InputMint)
	q.Set("outputMint", r.OutputMint)
	q.Set("amount", strconv.FormatUint(r.Amount, 10))

	if r.Taker != "" {
		q.Set("taker", r.Taker)
	}
	if r.ReferralAccount != "" {
		q.Set("referralAccount", r.ReferralAccount)
	}
	if r.ReferralFee != nil {
		q.Set("referralFee", strconv.FormatUint(uint64(*r.ReferralFee), 10))
	}
	if len(r.ExcludeRouters) > 0 {
		q.Set("excludeRouters", strings.Join(r.ExcludeRouters, ","))
	}
	if len(r.ExcludeDexes) > 0 {
		q.Set("excludeDexes", strings.Join(r.ExcludeDexes, ","))
	}
	if r.SlippageBps != nil {
		q.Set("slippageBps", strconv.FormatUint(uint64(*r.SlippageBps), 10))
	}
	return q
}

// SwapType identifies which Ultra execution path produced an order.
type SwapType string

const (
	SwapTypeAggregator SwapType = "aggregator"
	SwapTypeRFQ        SwapType = "rfq"
	SwapTypeHashflow   SwapType = "hashflow"
)

// UltraOrderResponse mirrors the /ultra/v1/order response schema.
type UltraOrderResponse struct {
	InputMint            string   `json:"inputMint"`
	OutputMint           string   `json:"outputMint"`
	InAmount             string   `json:"inAmount"`
	OutAmount            string   `json:"outAmount"`
	OtherAmountThreshold string   `json:"otherAmountThreshold"`
	SwapMode             SwapMode `json:"swapMode"`
	SlippageBps          int32    `json:"slippageBps"`
	PriceImpactPct       string   `json:"priceImpactPct"`

	RoutePlan []RoutePlanItem `json:"routePlan"`

	FeeMint                   string   `json:"feeMint,omitempty"`
	FeeBps                    uint16   `json:"feeBps"`
	PrioritizationFeeLamports uint64   `json:"prioritizationFeeLamports"`
	SwapType                  SwapType `json:"swapType"`

	// Transaction is the base64-encoded unsigned transaction. Empty when no
	// taker was provided.
	Transaction string `json:"transaction,omitempty"`
	Gasless     bool   `json:"gasless"`

	// RequestID ties the signed transaction back to this order on execute.
	RequestID string `json:"requestId"`
	TotalTime uint32 `json:"totalTime"`

	Taker   string `json:"taker,omitempty"`
	QuoteID string `json:"quoteId,omitempty"`
	Maker   string `json:"maker,omitempty"`

	PlatformFee *PlatformFee `json:"platformFee,omitempty"`
	ExpireAt    *uint64      `json:"expireAt,omitempty"`
}

// UltraExecuteOrderRequest is the POST /ultra/v1/execute payload.
type UltraExecuteOrderRequest struct {
	SignedTransaction string `json:"signedTransaction"`
	RequestID         string `json:"requestId"`
}

// NewUltraExecuteOrderRequest pairs a signed base64 transaction with the
// request id of the order it came from.
func NewUltraExecuteOrderRequest(signedTransaction, requestID string) *UltraExecuteOrderRequest {
	return &UltraExecuteOrderRequest{
		SignedTransaction: signedTransaction,
		RequestID:         requestID,
	}
}

func (r *UltraExecuteOrderRequest) validate() error {
	if strings.TrimSpace(r.SignedTransaction) == "" {
		return fmt.Errorf("signedTransaction is required")
	}
	if strings.TrimSpace(r.RequestID) == "" {
		return fmt.Errorf("requestId is required")
	}
	return nil
}

// UltraExecuteOrderResponse mirrors the /ultra/v1/execute response schema.
type UltraExecuteOrderResponse struct {
	Status    string `json:"status"` // "Success" or "Failed"
	Signature string `json:"signature,omitempty"`
	Slot      string `json:"slot,omitempty"`

	Code  int    `json:"code,omitempty"`
	Error string `json:"error,omitempty"`

	TotalInputAmount   string `json:"totalInputAmount,omitempty"`
	TotalOutputAmount  string `json:"totalOutputAmount,omitempty"`
	InputAmountResult  string `json:"inputAmountResult,omitempty"`
	OutputAmountResult string `json:"outputAmountResult,omitempty"`

	SwapEvents []UltraSwapEvent `json:"swapEvents,omitempty"`
}

// UltraSwapEvent is one fill reported by an executed order.
type UltraSwapEvent struct {
	InputMint    string `json:"inputMint"`
	InputAmount  string `json:"inputAmount"`
	OutputMint   string `json:"outputMint"`
	OutputAmount string `json:"outputAmount"`
}

// TokenBalances maps token symbols or mint addresses to balances, as returned
// by /ultra/v1/balances.
type TokenBalances map[string]TokenBalance

// TokenBalance is one wallet holding.
type TokenBalance struct {
	Amount   string  `json:"amount"`
	UIAmount float64 `json:"uiAmount"`
	Slot     uint64  `json:"slot"`
	IsFrozen bool    `json:"isFrozen"`
}

// Shield is the /ultra/v1/shield response: safety warnings per mint.
type Shield struct {
	Warnings map[string][]ShieldWarning `json:"warnings"`
}

// ShieldWarning flags a property of a token worth surfacing before a swap,
// such as a freeze authority or unlocked liquidity.
type ShieldWarning struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "info" or "warning"
}

// Router is one routing engine available to Ultra.
type Router struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Icon string `json:"icon,omitempty"`
}

// GetUltraOrder fetches an Ultra order: a quote plus, when a taker is set, an
// unsigned transaction ready for signing.
func (c *Client) GetUltraOrder(ctx context.Context, req *UltraOrderRequest) (*UltraOrderResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var out UltraOrderResponse
	if err := c.getJSON(ctx, "/ultra/v1/order", req.queryValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExecuteUltraOrder submits a signed order transaction through Jupiter's
// infrastructure and reports the execution result.
func (c *Client) ExecuteUltraOrder(ctx context.Context, req *UltraExecuteOrderRequest) (*UltraExecuteOrderResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var out UltraExecuteOrderResponse
	if err := c.postJSON(ctx, "/ultra/v1/execute", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTokenBalances fetches the token balances of a wallet address.
func (c *Client) GetTokenBalances(ctx context.Context, address string) (TokenBalances, error) {
	if strings.TrimSpace(address) == "" {
		return nil, fmt.Errorf("address is required")
	}

	var out TokenBalances
	if err := c.getJSON(ctx, "/ultra/v1/balances/"+url.PathEscape(address), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetShield fetches safety information for the given mints. Useful for
// spotting malicious tokens before executing a swap.
func (c *Client) GetShield(ctx context.Context, mints []string) (*Shield, error) {
	if len(mints) == 0 {
		return nil, fmt.Errorf("at least one mint is required")
	}

	q := url.Values{}
	q.Set("mints", strings.Join(mints, ","))

	var out Shield
	if err := c.getJSON(ctx, "/ultra/v1/shield", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRouters lists the routers available to Ultra's routing engine.
func (c *Client) GetRouters(ctx context.Context) ([]Router, error) {
	var out []Router
	if err := c.getJSON(ctx, "/ultra/v1/order/routers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
