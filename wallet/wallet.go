// Package wallet is a thin signing and broadcast layer for use with the
// jupiter package. It loads a keypair, signs the base64-encoded transactions
// the Jupiter APIs hand back, and submits them through a user-supplied Solana
// RPC endpoint. It owns no signing primitives and no execution logic; both
// are delegated to github.com/gagliardetto/solana-go.
package wallet

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/mr-tron/base58"
)

// Wallet pairs a keypair with an RPC client.
type Wallet struct {
	priv solana.PrivateKey
	pub  solana.PublicKey
	rpc  *rpc.Client
}

// New builds a Wallet from an RPC URL and a private key in either
// base58-encoded 64-byte form or solana-keygen JSON array form.
func New(rpcURL, privateKey string) (*Wallet, error) {
	if strings.TrimSpace(rpcURL) == "" {
		return nil, fmt.Errorf("wallet: rpc url is required")
	}

	priv, err := ParsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		priv: priv,
		pub:  priv.PublicKey(),
		rpc:  rpc.New(rpcURL),
	}, nil
}

// ParsePrivateKey decodes a private key from base58 or a solana-keygen JSON
// byte array.
func ParsePrivateKey(s string) (solana.PrivateKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("wallet: private key is required")
	}

	if strings.HasPrefix(s, "[") {
		var ints []int
		if err := json.Unmarshal([]byte(s), &ints); err != nil {
			return nil, fmt.Errorf("wallet: invalid JSON private key: %w", err)
		}
		b := make([]byte, len(ints))
		for i, v := range ints {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("wallet: invalid byte at %d: %d", i, v)
			}
			b[i] = byte(v)
		}
		if len(b) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("wallet: expected %d bytes, got %d", ed25519.PrivateKeySize, len(b))
		}
		return solana.PrivateKey(b), nil
	}

	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("wallet: invalid base58 private key: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("wallet: expected %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}
	return solana.PrivateKey(raw), nil
}

// Address returns the wallet's base58 public key.
func (w *Wallet) Address() string { return w.pub.String() }

// PublicKey returns the wallet's public key.
func (w *Wallet) PublicKey() solana.PublicKey { return w.pub }

// DecodeTransaction decodes a base64-encoded transaction as returned by the
// swap, ultra, trigger and recurring endpoints.
func DecodeTransaction(b64 string) (*solana.Transaction, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("wallet: decode transaction: %w", err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, fmt.Errorf("wallet: unmarshal transaction: %w", err)
	}
	return tx, nil
}

// Sign signs every signature slot owned by this wallet's key.
func (w *Wallet) Sign(tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.pub) {
			return &w.priv
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("wallet: sign transaction: %w", err)
	}
	return nil
}

// SignTransactionBase64 decodes, signs, and re-encodes a transaction. The
// returned string is ready for the Ultra, Trigger, and Recurring execute
// endpoints.
func (w *Wallet) SignTransactionBase64(b64 string) (string, *solana.Transaction, error) {
	tx, err := DecodeTransaction(b64)
	if err != nil {
		return "", nil, err
	}
	if err := w.Sign(tx); err != nil {
		return "", nil, err
	}

	signed, err := tx.MarshalBinary()
	if err != nil {
		return "", nil, fmt.Errorf("wallet: serialize transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(signed), tx, nil
}
