package proxy

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/solport/jupgo/internal/cache"
	"github.com/solport/jupgo/jupiter"
)

// Handlers contains all dependencies for API endpoint handlers
type Handlers struct {
	Jupiter *jupiter.Client   // upstream client (required)
	Prices  *cache.PriceCache // redis price cache (optional)
	DevMode bool              // detailed error responses
	Logger  *logrus.Logger
}

// err returns a standardized JSON error response.
// In dev mode, includes additional error details for debugging.
func (h *Handlers) err(c echo.Context, code int, msg string, details any) error {
	resp := ErrorResponse{Error: msg, Code: code}
	if h.DevMode && details != nil {
		resp.Details = details
	}
	return c.JSON(code, resp)
}

func (h *Handlers) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

// Health returns a simple health check endpoint
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}

func splitCSVQuery(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// Quote validates the incoming query parameters and forwards them upstream.
func (h *Handlers) Quote(c echo.Context) error {
	inputMint := strings.TrimSpace(c.QueryParam("inputMint"))
	outputMint := strings.TrimSpace(c.QueryParam("outputMint"))
	amountStr := strings.TrimSpace(c.QueryParam("amount"))

	if inputMint == "" {
		return h.err(c, http.StatusBadRequest, "invalid inputMint", map[string]any{"inputMint": "required"})
	}
	if outputMint == "" {
		return h.err(c, http.StatusBadRequest, "invalid outputMint", map[string]any{"outputMint": "required"})
	}
	amount, err := strconv.ParseUint(amountStr, 10, 64)
	if err != nil || amount == 0 {
		return h.err(c, http.StatusBadRequest, "invalid amount", map[string]any{"amount": "must be a positive uint64"})
	}

	req := jupiter.NewQuoteRequest(inputMint, outputMint, amount)

	if v := strings.TrimSpace(c.QueryParam("slippageBps")); v != "" {
		n, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid slippageBps", map[string]any{"slippageBps": "must be uint16"})
		}
		req.WithSlippageBps(uint16(n))
	}

	switch mode := strings.TrimSpace(c.QueryParam("swapMode")); mode {
	case "":
	case string(jupiter.SwapModeExactIn), string(jupiter.SwapModeExactOut):
		req.WithSwapMode(jupiter.SwapMode(mode))
	default:
		return h.err(c, http.StatusBadRequest, "invalid swapMode", map[string]any{"swapMode": "must be ExactIn or ExactOut"})
	}

	if v := strings.TrimSpace(c.QueryParam("onlyDirectRoutes")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid onlyDirectRoutes", map[string]any{"onlyDirectRoutes": "must be boolean"})
		}
		req.WithOnlyDirectRoutes(b)
	}

	if dexes := splitCSVQuery(c.QueryParams()["dexes"]); len(dexes) > 0 {
		req.WithDexes(dexes...)
	}
	if exclude := splitCSVQuery(c.QueryParams()["excludeDexes"]); len(exclude) > 0 {
		req.WithExcludeDexes(exclude...)
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	out, err := h.Jupiter.GetQuote(ctx, req)
	if err != nil {
		return h.err(c, http.StatusBadGateway, "jupiter quote failed", map[string]any{"err": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

// Price returns the price of one mint, served from redis when fresh.
func (h *Handlers) Price(c echo.Context) error {
	mint := strings.TrimSpace(c.Param("mint"))
	if mint == "" {
		return h.err(c, http.StatusBadRequest, "invalid mint", nil)
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if h.Prices != nil {
		if price, err := h.Prices.Get(ctx, mint); err == nil {
			return c.JSON(http.StatusOK, PriceResponse{Mint: mint, Price: price, Cached: true})
		} else if !errors.Is(err, cache.ErrMiss) {
			h.Logger.WithError(err).Warn("price cache lookup failed")
		}
	}

	out, err := h.Jupiter.GetTokenPrice(ctx, jupiter.NewTokenPriceRequest(mint))
	if err != nil {
		return h.err(c, http.StatusBadGateway, "jupiter price failed", map[string]any{"err": err.Error()})
	}

	price, ok := out.Data[mint]
	if !ok {
		return h.err(c, http.StatusNotFound, "price not found", nil)
	}

	if h.Prices != nil {
		h.Prices.Set(ctx, mint, &price)
	}
	return c.JSON(http.StatusOK, PriceResponse{Mint: mint, Price: &price, Cached: false})
}

// Shield returns token safety warnings for a comma-separated mints parameter.
func (h *Handlers) Shield(c echo.Context) error {
	mints := splitCSVQuery(c.QueryParams()["mints"])
	if len(mints) == 0 {
		return h.err(c, http.StatusBadRequest, "invalid mints", map[string]any{"mints": "required"})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Jupiter.GetShield(ctx, mints)
	if err != nil {
		return h.err(c, http.StatusBadGateway, "jupiter shield failed", map[string]any{"err": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
