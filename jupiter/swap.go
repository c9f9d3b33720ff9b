package jupiter

import (
	"context"
	"fmt"
	"strings"
)

// SwapRequest is the POST /swap/v1/swap payload. It carries the quote
// response verbatim plus the signing wallet and optional execution knobs.
type SwapRequest struct {
	UserPublicKey string `json:"userPublicKey"`

	WrapAndUnwrapSol              *bool   `json:"wrapAndUnwrapSol,omitempty"`
	UseSharedAccounts             *bool   `json:"useSharedAccounts,omitempty"`
	FeeAccount                    string  `json:"feeAccount,omitempty"`
	TrackingAccount               string  `json:"trackingAccount,omitempty"`
	DestinationTokenAccount       string  `json:"destinationTokenAccount,omitempty"`
	AsLegacyTransaction           *bool   `json:"asLegacyTransaction,omitempty"`
	DynamicComputeUnitLimit       *bool   `json:"dynamicComputeUnitLimit,omitempty"`
	SkipUserAccountRPCCalls       *bool   `json:"skipUserAccountRpcCalls,omitempty"`
	DynamicSlippage               *bool   `json:"dynamicSlippage,omitempty"`
	ComputeUnitPriceMicroLamports *uint64 `json:"computeUnitPriceMicroLamports,omitempty"`
	BlockhashSlotsToExpiry        *uint64 `json:"blockhashSlotsToExpiry,omitempty"`

	PrioritizationFeeLamports *PrioritizationFeeLamports `json:"prioritizationFeeLamports,omitempty"`

	QuoteResponse QuoteResponse `json:"quoteResponse"`
}

// PrioritizationFeeLamports configures priority fees or a Jito tip for the
// built transaction.
type PrioritizationFeeLamports struct {
	JitoTipLamports              *uint64                       `json:"jitoTipLamports,omitempty"`
	PriorityLevelWithMaxLamports *PriorityLevelWithMaxLamports `json:"priorityLevelWithMaxLamports,omitempty"`
}

// PriorityLevelWithMaxLamports asks Jupiter to estimate a priority fee at the
// given level, capped at MaxLamports.
type PriorityLevelWithMaxLamports struct {
	MaxLamports   uint64        `json:"maxLamports"`
	PriorityLevel PriorityLevel `json:"priorityLevel"`
}

// PriorityLevel is a fee estimation percentile.
type PriorityLevel string

const (
	PriorityLevelMedium   PriorityLevel = "medium"
	PriorityLevelHigh     PriorityLevel = "high"
	PriorityLevelVeryHigh PriorityLevel = "veryHigh"
)

// NewSwapRequest returns a swap request for the given wallet and quote. The
// quote's route and amount fields are carried through untouched.
func NewSwapRequest(userPublicKey string, quote *QuoteResponse) *SwapRequest {
	return &SwapRequest{
		UserPublicKey: userPublicKey,
		QuoteResponse: *quote,
	}
}

// WithWrapAndUnwrapSol controls automatic wSOL wrapping. Upstream default is
// true.
func (r *SwapRequest) WithWrapAndUnwrapSol(v bool) *SwapRequest {
	r.WrapAndUnwrapSol = &v
	return r
}

// WithUseSharedAccounts routes through Jupiter's shared intermediate token
// accounts.
func (r *SwapRequest) WithUseSharedAccounts(v bool) *SwapRequest {
	r.UseSharedAccounts = &v
	return r
}

// WithFeeAccount sets the token account collecting the platform fee.
func (r *SwapRequest) WithFeeAccount(account string) *SwapRequest {
	r.FeeAccount = account
	return r
}

// WithTrackingAccount attaches a pubkey used to track transactions.
func (r *SwapRequest) WithTrackingAccount(account string) *SwapRequest {
	r.TrackingAccount = account
	return r
}

// WithDestinationTokenAccount sends the output to a specific token account
// instead of the user's ATA.
func (r *SwapRequest) WithDestinationTokenAccount(account string) *SwapRequest {
	r.DestinationTokenAccount = account
	return r
}

// WithAsLegacyTransaction builds a legacy transaction. Must match the quote.
func (r *SwapRequest) WithAsLegacyTransaction(v bool) *SwapRequest {
	r.AsLegacyTransaction = &v
	return r
}

// WithDynamicComputeUnitLimit simulates to size the compute unit limit.
func (r *SwapRequest) WithDynamicComputeUnitLimit(v bool) *SwapRequest {
	r.DynamicComputeUnitLimit = &v
	return r
}

// WithSkipUserAccountRPCCalls skips the RPC checks for the user's accounts.
func (r *SwapRequest) WithSkipUserAccountRPCCalls(v bool) *SwapRequest {
	r.SkipUserAccountRPCCalls = &v
	return r
}

// WithDynamicSlippage lets Jupiter pick the slippage at build time.
func (r *SwapRequest) WithDynamicSlippage(v bool) *SwapRequest {
	r.DynamicSlippage = &v
	return r
}

// WithComputeUnitPriceMicroLamports sets an exact compute unit price.
func (r *SwapRequest) WithComputeUnitPriceMicroLamports(price uint64) *SwapRequest {
	r.ComputeUnitPriceMicroLamports = &price
	return r
}

// WithBlockhashSlotsToExpiry sets how many slots the transaction stays valid.
func (r *SwapRequest) WithBlockhashSlotsToExpiry(slots uint64) *SwapRequest {
	r.BlockhashSlotsToExpiry = &slots
	return r
}

// WithPrioritizationFeeLamports sets the priority fee configuration.
func (r *SwapRequest) WithPrioritizationFeeLamports(fee PrioritizationFeeLamports) *SwapRequest {
	r.PrioritizationFeeLamports = &fee
	return r
}

func (r *SwapRequest) validate() error {
	if strings.TrimSpace(r.UserPublicKey) == "" {
		return fmt.Errorf("userPublicKey is required")
	}
	return nil
}

// SwapResponse is the POST /swap/v1/swap response: a base64-encoded unsigned
// transaction ready for signing and submission.
type SwapResponse struct {
	SwapTransaction           string `json:"swapTransaction"`
	LastValidBlockHeight      uint64 `json:"lastValidBlockHeight"`
	PrioritizationFeeLamports uint64 `json:"prioritizationFeeLamports,omitempty"`
	ComputeUnitLimit          uint64 `json:"computeUnitLimit,omitempty"`
}

// SwapInstructions is the POST /swap/v1/swap-instructions response: the raw
// instructions of the swap for callers composing their own transaction.
type SwapInstructions struct {
	TokenLedgerInstruction      *Instruction  `json:"tokenLedgerInstruction,omitempty"`
	ComputeBudgetInstructions   []Instruction `json:"computeBudgetInstructions"`
	SetupInstructions           []Instruction `json:"setupInstructions"`
	SwapInstruction             Instruction   `json:"swapInstruction"`
	CleanupInstruction          *Instruction  `json:"cleanupInstruction,omitempty"`
	OtherInstructions           []Instruction `json:"otherInstructions,omitempty"`
	AddressLookupTableAddresses []string      `json:"addressLookupTableAddresses"`
	PrioritizationFeeLamports   uint64        `json:"prioritizationFeeLamports,omitempty"`
}

// Instruction is a Solana instruction in the API's JSON form. Data is
// base64-encoded.
type Instruction struct {
	ProgramID string        `json:"programId"`
	Accounts  []AccountMeta `json:"accounts"`
	Data      string        `json:"data"`
}

// AccountMeta is one account referenced by an instruction.
type AccountMeta struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"isSigner"`
	IsWritable bool   `json:"isWritable"`
}

// GetSwapTransaction asks /swap/v1/swap to build an unsigned transaction for
// a previously fetched quote.
func (c *Client) GetSwapTransaction(ctx context.Context, req *SwapRequest) (*SwapResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var out SwapResponse
	if err := c.postJSON(ctx, "/swap/v1/swap", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSwapInstructions asks /swap/v1/swap-instructions for the instruction
// set of a swap instead of a full transaction.
func (c *Client) GetSwapInstructions(ctx context.Context, req *SwapRequest) (*SwapInstructions, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var out SwapInstructions
	if err := c.postJSON(ctx, "/swap/v1/swap-instructions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
