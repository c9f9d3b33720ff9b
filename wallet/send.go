package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// SendOptions configures transaction submission.
type SendOptions struct {
	SkipPreflight       bool
	PreflightCommitment rpc.CommitmentType
	MaxRetries          *uint
}

// DefaultSendOptions returns recommended send settings.
func DefaultSendOptions() SendOptions {
	maxRetries := uint(3)
	return SendOptions{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentProcessed,
		MaxRetries:          &maxRetries,
	}
}

// Send submits a signed transaction and returns its signature.
func (w *Wallet) Send(ctx context.Context, tx *solana.Transaction, opts *SendOptions) (solana.Signature, error) {
	if opts == nil {
		defaultOpts := DefaultSendOptions()
		opts = &defaultOpts
	}

	sig, err := w.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       opts.SkipPreflight,
		PreflightCommitment: opts.PreflightCommitment,
		MaxRetries:          opts.MaxRetries,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("wallet: send transaction: %w", err)
	}
	return sig, nil
}

// Confirm polls signature statuses until the commitment level is reached,
// the transaction fails, or the timeout expires.
func (w *Wallet) Confirm(ctx context.Context, sig solana.Signature, commitment rpc.ConfirmationStatusType, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	backoff := 500 * time.Millisecond
	maxBackoff := 4 * time.Second

	for time.Now().Before(deadline) {
		confirmed, err := w.checkSignatureStatus(ctx, sig, commitment)
		if err != nil {
			return err
		}
		if confirmed {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}

	return fmt.Errorf("wallet: confirmation timeout after %v", timeout)
}

func (w *Wallet) checkSignatureStatus(ctx context.Context, sig solana.Signature, commitment rpc.ConfirmationStatusType) (bool, error) {
	out, err := w.rpc.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return false, fmt.Errorf("wallet: get signature statuses: %w", err)
	}
	if len(out.Value) == 0 || out.Value[0] == nil {
		return false, nil // not yet processed
	}

	status := out.Value[0]
	if status.Err != nil {
		return false, fmt.Errorf("wallet: transaction failed: %v", status.Err)
	}

	switch commitment {
	case rpc.ConfirmationStatusProcessed:
		return status.ConfirmationStatus != "", nil
	case rpc.ConfirmationStatusConfirmed:
		return status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
			status.ConfirmationStatus == rpc.ConfirmationStatusFinalized, nil
	case rpc.ConfirmationStatusFinalized:
		return status.ConfirmationStatus == rpc.ConfirmationStatusFinalized, nil
	default:
		return status.ConfirmationStatus != "", nil
	}
}

// SignAndSend decodes a base64 transaction, signs it, submits it, and waits
// for confirmation. This is the whole client-side half of a Swap API flow.
func (w *Wallet) SignAndSend(ctx context.Context, txBase64 string, opts *SendOptions) (solana.Signature, error) {
	tx, err := DecodeTransaction(txBase64)
	if err != nil {
		return solana.Signature{}, err
	}
	if err := w.Sign(tx); err != nil {
		return solana.Signature{}, err
	}

	sig, err := w.Send(ctx, tx, opts)
	if err != nil {
		return solana.Signature{}, err
	}

	if err := w.Confirm(ctx, sig, rpc.ConfirmationStatusConfirmed, 60*time.Second); err != nil {
		return sig, err
	}
	return sig, nil
}
