package curve

import (
	"github.com/gagliardetto/solana-go"
)

// GraduationResult captures the one-shot liquidity migration split for the
// caller to disburse and hand off.
type GraduationResult struct {
	Mint    solana.PublicKey
	Creator solana.PublicKey

	// FinalMarketCap is the market cap at the moment of graduation.
	FinalMarketCap uint64
	// LiquiditySol and LiquidityTokens are handed off to the downstream
	// liquidity pool.
	LiquiditySol    uint64
	LiquidityTokens uint64
	// CreatorReward and PlatformFee are disbursed immediately.
	CreatorReward uint64
	PlatformFee   uint64
	Timestamp     int64
}

// Graduate performs the terminal transition once the curve's real SOL
// reserve has reached GraduationSolThreshold. The raised SOL is split
// 85/10/5 between pool liquidity, the creator and the platform; all
// remaining real token reserves become pool liquidity. The curve's real
// reserves are zeroed and no further trade is permitted.
//
// A second call on a graduated curve fails with ErrAlreadyGraduated and
// changes nothing, so a retrying caller can never double-disburse.
func Graduate(bc *BondingCurve, pol PolicySnapshot, now int64) (*GraduationResult, error) {
	if pol.Paused {
		return nil, ErrProtocolPaused
	}
	if bc.Graduated {
		return nil, ErrAlreadyGraduated
	}
	if bc.RealSolReserves < GraduationSolThreshold {
		return nil, ErrNotReadyForGraduation
	}

	totalSol := bc.RealSolReserves

	liquiditySol, err := mulDiv(totalSol, GraduationLiquidityPercent, 100)
	if err != nil {
		return nil, err
	}
	creatorReward, err := mulDiv(totalSol, CreatorGraduationRewardPercent, 100)
	if err != nil {
		return nil, err
	}
	platformFee, err := mulDiv(totalSol, PlatformGraduationFeePercent, 100)
	if err != nil {
		return nil, err
	}

	liquidityTokens := bc.RealTokenReserves

	// Virtual reserves are untouched by graduation, so the final market
	// cap is simply the current one.
	finalMarketCap, err := bc.MarketCap(TotalSupply)
	if err != nil {
		return nil, err
	}

	bc.Graduated = true
	bc.GraduatedAt = now
	bc.RealSolReserves = 0
	bc.RealTokenReserves = 0

	return &GraduationResult{
		Mint:            bc.Mint,
		Creator:         bc.Creator,
		FinalMarketCap:  finalMarketCap,
		LiquiditySol:    liquiditySol,
		LiquidityTokens: liquidityTokens,
		CreatorReward:   creatorReward,
		PlatformFee:     platformFee,
		Timestamp:       now,
	}, nil
}
