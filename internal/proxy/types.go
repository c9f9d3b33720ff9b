package proxy

import "github.com/solport/jupgo/jupiter"

// ErrorResponse is the standardized error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Details any    `json:"details,omitempty"` // dev mode only
}

// HealthResponse is the health check payload
type HealthResponse struct {
	OK bool `json:"ok"`
}

// PriceResponse wraps one token price with its cache provenance
type PriceResponse struct {
	Mint   string              `json:"mint"`
	Price  *jupiter.TokenPrice `json:"price"`
	Cached bool                `json:"cached"`
}
