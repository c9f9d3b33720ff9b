package jupiter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// TokenPriceRequest holds the parameters for GET /price/v2.
type TokenPriceRequest struct {
	// Mints are the token mint addresses to price.
	Mints []string

	// VsToken denominates prices in another mint. Default is USD.
	VsToken string

	// ShowExtraInfo requests depth/confidence details. Cannot be combined
	// with VsToken upstream.
	ShowExtraInfo *bool
}

// NewTokenPriceRequest returns a price request for the given mints.
func NewTokenPriceRequest(mints ...string) *TokenPriceRequest {
	return &TokenPriceRequest{Mints: mints}
}

// WithVsToken denominates prices in the given mint instead of USD.
func (r *TokenPriceRequest) WithVsToken(mint string) *TokenPriceRequest {
	r.VsToken = mint
	return r
}

// WithShowExtraInfo toggles the extraInfo payload.
func (r *TokenPriceRequest) WithShowExtraInfo(v bool) *TokenPriceRequest {
	r.ShowExtraInfo = &v
	return r
}

func (r *TokenPriceRequest) validate() error {
	if len(r.Mints) == 0 {
		return fmt.Errorf("at least one mint is required")
	}
	return nil
}

func (r *TokenPriceRequest) queryValues() url.Values {
	q := url.Values{}
	q.Set("ids", strings.Join(r.Mints, ","))
	if r.VsToken != "" {
		q.Set("vsToken", r.VsToken)
	}
	if r.ShowExtraInfo != nil {
		q.Set("showExtraInfo", strconv.FormatBool(*r.ShowExtraInfo))
	}
	return q
}

// TokenPriceResponse mirrors the /price/v2 response schema.
type TokenPriceResponse struct {
	Data      map[string]TokenPrice `json:"data"`
	TimeTaken float64               `json:"timeTaken"`
}

// TokenPrice is the price entry for one mint.
type TokenPrice struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Price     string          `json:"price"`
	ExtraInfo json.RawMessage `json:"extraInfo,omitempty"`
}

// GetTokenPrice fetches prices for the requested mints.
func (c *Client) GetTokenPrice(ctx context.Context, req *TokenPriceRequest) (*TokenPriceResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var out TokenPriceResponse
	if err := c.getJSON(ctx, "/price/v2", req.queryValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
