package jupiter

import (
	"context"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"

	"solana-dex-dashboard/internal/domain"
)

// Wallet is the external signing collaborator. The dashboard consumes
// these capabilities; it never implements signing itself.
type Wallet interface {
	// Connected reports whether a wallet session is active.
	Connected() bool

	// PublicKey returns the wallet's base58 public key.
	PublicKey() string

	// SignTransaction signs an unsigned transaction payload and
	// returns the serialized signed transaction.
	SignTransaction(ctx context.Context, tx *domain.SwapTransaction) ([]byte, error)
}

// Payer validation errors.
var (
	ErrBadPayerEncoding = errors.New("not a valid base58 public key")
	ErrPayerOffCurve    = errors.New("public key is not on the ed25519 curve")
)

// ValidatePayer checks that payer is a base58-encoded 32-byte ed25519
// public key on the curve. Wallet payers are always on-curve; an
// off-curve address here is a program-derived address or garbage and
// cannot sign the transaction it would pay for.
func ValidatePayer(payer string) error {
	raw, err := base58.Decode(payer)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayerEncoding, err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("%w: got %d bytes, want 32", ErrBadPayerEncoding, len(raw))
	}
	if _, err := new(edwards25519.Point).SetBytes(raw); err != nil {
		return ErrPayerOffCurve
	}
	return nil
}
