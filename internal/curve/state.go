package curve

import (
	"github.com/gagliardetto/solana-go"
)

// BondingCurve is the per-token reserve state. It is the unit of truth for
// pricing and settlement: virtual reserves drive the constant-product
// quote, real reserves track the capital and tokens the curve actually
// holds.
//
// The engine assumes the host serializes all mutating operations against
// the same curve; curves for different mints are independent.
type BondingCurve struct {
	// Mint identifies the token this curve trades.
	Mint solana.PublicKey
	// Creator launched the token and receives the graduation reward.
	Creator solana.PublicKey

	// VirtualSolReserves and VirtualTokenReserves form the constant
	// product. Both stay strictly positive until graduation.
	VirtualSolReserves   uint64
	VirtualTokenReserves uint64

	// RealSolReserves is the SOL actually locked in the curve's vault.
	RealSolReserves uint64
	// RealTokenReserves is the token amount still available for sale.
	RealTokenReserves uint64

	// TokensSold is the cumulative net amount sold to traders.
	TokensSold uint64

	// Graduated marks the terminal state. Once set, real reserves are zero
	// and no further trade is permitted.
	Graduated   bool
	CreatedAt   int64
	GraduatedAt int64
}

// NewBondingCurve seeds a curve with the protocol's default virtual
// reserves and the initial real token reserve.
func NewBondingCurve(mint, creator solana.PublicKey, createdAt int64) *BondingCurve {
	bc, _ := NewBondingCurveWithReserves(mint, creator,
		DefaultVirtualSolReserves, DefaultVirtualTokenReserves, createdAt)
	return bc
}

// NewBondingCurveWithReserves seeds a curve with explicit virtual reserves.
// Both sides must be strictly positive.
func NewBondingCurveWithReserves(mint, creator solana.PublicKey, virtualSol, virtualToken uint64, createdAt int64) (*BondingCurve, error) {
	if virtualSol == 0 || virtualToken == 0 {
		return nil, ErrInvalidInitialReserves
	}
	return &BondingCurve{
		Mint:                 mint,
		Creator:              creator,
		VirtualSolReserves:   virtualSol,
		VirtualTokenReserves: virtualToken,
		RealSolReserves:      0,
		RealTokenReserves:    InitialRealTokenReserves,
		CreatedAt:            createdAt,
	}, nil
}

// PolicySnapshot is the protocol-level view a single settlement observes.
// Fee rate and pause flag are read together so a mid-trade policy change
// can never retroactively alter an already-computed quote.
type PolicySnapshot struct {
	FeeRecipient   solana.PublicKey
	PlatformFeeBps uint16
	Paused         bool
}

// platformFee computes amount*bps/10000 through the wide intermediate,
// truncating toward zero.
func (s PolicySnapshot) platformFee(amount uint64) (uint64, error) {
	return mulDiv(amount, uint64(s.PlatformFeeBps), bpsDenominator)
}
