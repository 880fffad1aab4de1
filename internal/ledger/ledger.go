// Package ledger defines the fund-transfer collaborator the settlement
// engine delegates to. The engine computes amounts; the ledger moves them,
// atomically with the curve state update or not at all.
package ledger

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrInsufficientFunds rejects a batch that would drive any balance
	// negative. Nothing from the batch is applied.
	ErrInsufficientFunds = errors.New("insufficient funds for transfer")

	// ErrBalanceOverflow rejects a batch that would push a recipient's
	// balance past the 64-bit ceiling. Nothing from the batch is applied.
	ErrBalanceOverflow = errors.New("balance overflow on transfer")
)

// Kind distinguishes the two balance types a transfer can move.
type Kind int

const (
	// KindSol moves lamports.
	KindSol Kind = iota
	// KindToken moves raw token units of a specific mint.
	KindToken
)

// Transfer is one balance movement. A zero From on a token transfer is an
// issuance: the amount is created at To rather than debited from anyone.
type Transfer struct {
	Kind   Kind
	Mint   solana.PublicKey // token transfers only
	From   solana.PublicKey
	To     solana.PublicKey
	Amount uint64
}

// Ledger performs balance movements for the engine. Apply commits a whole
// batch atomically: either every transfer lands or none does.
type Ledger interface {
	Apply(ctx context.Context, transfers []Transfer) error
	SolBalance(account solana.PublicKey) uint64
	TokenBalance(mint, account solana.PublicKey) uint64
}
