package jupiter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SwapMode selects which side of the swap the amount refers to.
type SwapMode string

const (
	SwapModeExactIn  SwapMode = "ExactIn"
	SwapModeExactOut SwapMode = "ExactOut"
)

// QuoteRequest holds the parameters for GET /swap/v1/quote. Required fields
// are set by NewQuoteRequest; everything else is optional and attached with
// the chaining setters.
type QuoteRequest struct {
	InputMint  string
	OutputMint string
	Amount     uint64 // raw base units, before decimals

	SlippageBps *uint16
	SwapMode    SwapMode

	Dexes        []string
	ExcludeDexes []string

	RestrictIntermediateTokens *bool
	OnlyDirectRoutes           *bool
	AsLegacyTransaction        *bool

	PlatformFeeBps  *uint16
	MaxAccounts     *uint64
	DynamicSlippage *bool
}

// NewQuoteRequest returns a quote request for swapping amount base units of
// inputMint into outputMint.
func NewQuoteRequest(inputMint, outputMint string, amount uint64) *QuoteRequest {
	return &QuoteRequest{
		InputMint:  inputMint,
		OutputMint: outputMint,
		Amount:     amount,
	}
}

// WithSlippageBps sets the maximum tolerated slippage in basis points.
func (r *QuoteRequest) WithSlippageBps(bps uint16) *QuoteRequest {
	r.SlippageBps = &bps
	return r
}

// WithSwapMode sets ExactIn or ExactOut. ExactIn is the upstream default.
func (r *QuoteRequest) WithSwapMode(mode SwapMode) *QuoteRequest {
	r.SwapMode = mode
	return r
}

// WithDexes restricts routing to the named DEXes.
func (r *QuoteRequest) WithDexes(dexes ...string) *QuoteRequest {
	r.Dexes = dexes
	return r
}

// WithExcludeDexes removes the named DEXes from routing.
func (r *QuoteRequest) WithExcludeDexes(dexes ...string) *QuoteRequest {
	r.ExcludeDexes = dexes
	return r
}

// WithRestrictIntermediateTokens limits intermediate hops to highly liquid
// tokens.
func (r *QuoteRequest) WithRestrictIntermediateTokens(v bool) *QuoteRequest {
	r.RestrictIntermediateTokens = &v
	return r
}

// WithOnlyDirectRoutes restricts routing to single-hop routes.
func (r *QuoteRequest) WithOnlyDirectRoutes(v bool) *QuoteRequest {
	r.OnlyDirectRoutes = &v
	return r
}

// WithAsLegacyTransaction requests a legacy (non-versioned) transaction.
func (r *QuoteRequest) WithAsLegacyTransaction(v bool) *QuoteRequest {
	r.AsLegacyTransaction = &v
	return r
}

// WithPlatformFeeBps sets an integrator platform fee in basis points.
func (r *QuoteRequest) WithPlatformFeeBps(bps uint16) *QuoteRequest {
	r.PlatformFeeBps = &bps
	return r
}

// WithMaxAccounts caps the number of accounts the route may touch.
func (r *QuoteRequest) WithMaxAccounts(n uint64) *QuoteRequest {
	r.MaxAccounts = &n
	return r
}

// WithDynamicSlippage lets Jupiter estimate slippage per route.
func (r *QuoteRequest) WithDynamicSlippage(v bool) *QuoteRequest {
	r.DynamicSlippage = &v
	return r
}

func (r *QuoteRequest) validate() error {
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

// queryValues serializes the request to the documented query parameters.
// Unset optionals are omitted.
func (r *QuoteRequest) queryValues() url.Values {
	q := url.Values{}
	q.Set("inputMint", r.InputMint)
	q.Set("outputMint", r.OutputMint)
	q.Set("amount", strconv.FormatUint(r.Amount, 10))

	if r.SlippageBps != nil {
		q.Set("slippageBps", strconv.FormatUint(uint64(*r.SlippageBps), 10))
	}
	if r.SwapMode != "" {
		q.Set("swapMode", string(r.SwapMode))
	}
	if len(r.Dexes) > 0 {
		q.Set("dexes", strings.Join(r.Dexes, ","))
	}
	if len(r.ExcludeDexes) > 0 {
		q.Set("excludeDexes", strings.Join(r.ExcludeDexes, ","))
	}
	if r.RestrictIntermediateTokens != nil {
		q.Set("restrictIntermediateTokens", strconv.FormatBool(*r.RestrictIntermediateTokens))
	}
	if r.OnlyDirectRoutes != nil {
		q.Set("onlyDirectRoutes", strconv.FormatBool(*r.OnlyDirectRoutes))
	}
	if r.AsLegacyTransaction != nil {
		q.Set("asLegacyTransaction", strconv.FormatBool(*r.AsLegacyTransaction))
	}
	if r.PlatformFeeBps != nil {
		q.Set("platformFeeBps", strconv.FormatUint(uint64(*r.PlatformFeeBps), 10))
	}
	if r.MaxAccounts != nil {
		q.Set("maxAccounts", strconv.FormatUint(*r.MaxAccounts, 10))
	}
	if r.DynamicSlippage != nil {
		q.Set("dynamicSlippage", strconv.FormatBool(*r.DynamicSlippage))
	}
	return q
}

// QuoteResponse mirrors the /swap/v1/quote response schema.
type QuoteResponse struct {
	InputMint            string       `json:"inputMint"`
	InAmount             string       `json:"inAmount"`
	OutputMint           string       `json:"outputMint"`
	OutAmount            string       `json:"outAmount"`
	OtherAmountThreshold string       `json:"otherAmountThreshold"`
	SwapMode             SwapMode     `json:"swapMode"`
	SlippageBps          int32        `json:"slippageBps"`
	PlatformFee          *PlatformFee `json:"platformFee,omitempty"`
	PriceImpactPct       string       `json:"priceImpactPct"`

	RoutePlan []RoutePlanItem `json:"routePlan"`

	ScoreReport json.RawMessage `json:"scoreReport,omitempty"`
	ContextSlot uint64          `json:"contextSlot,omitempty"`
	TimeTaken   float64         `json:"timeTaken,omitempty"`

	SwapUSDValue                  string                       `json:"swapUsdValue,omitempty"`
	SimplerRouteUsed              *bool                        `json:"simplerRouteUsed,omitempty"`
	MostReliableAmmsQuoteReport   *MostReliableAmmsQuoteReport `json:"mostReliableAmmsQuoteReport,omitempty"`
	UseIncurredSlippageForQuoting json.RawMessage              `json:"useIncurredSlippageForQuoting,omitempty"`
}

// PlatformFee reports the integrator fee applied to a quote.
type PlatformFee struct {
	Amount string `json:"amount,omitempty"`
	FeeBps int32  `json:"feeBps,omitempty"`
}

// RoutePlanItem is one hop of a route.
type RoutePlanItem struct {
	SwapInfo SwapInfo `json:"swapInfo"`
	Percent  int32    `json:"percent"`
	Bps      uint16   `json:"bps,omitempty"`
}

// SwapInfo describes the AMM leg of a route hop.
type SwapInfo struct {
	AmmKey     string `json:"ammKey"`
	Label      string `json:"label,omitempty"`
	InputMint  string `json:"inputMint"`
	OutputMint string `json:"outputMint"`
	InAmount   string `json:"inAmount"`
	OutAmount  string `json:"outAmount"`
	FeeAmount  string `json:"feeAmount,omitempty"`
	FeeMint    string `json:"feeMint,omitempty"`
}

// MostReliableAmmsQuoteReport lists the AMM chosen per mint pair when the
// reliability heuristic kicked in.
type MostReliableAmmsQuoteReport struct {
	Info map[string]string `json:"info"`
}

// GetQuote fetches a swap quote.
//
//	quote, err := c.GetQuote(ctx, jupiter.NewQuoteRequest(solMint, jupMint, 1_000_000_000).
//		WithSlippageBps(100))
func (c *Client) GetQuote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var out QuoteResponse
	if err := c.getJSON(ctx, "/swap/v1/quote", req.queryValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
