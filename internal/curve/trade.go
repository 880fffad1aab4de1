package curve

import (
	"github.com/gagliardetto/solana-go"
)

// TradeResult captures one settled trade for the caller to persist and
// emit. SOL amounts are lamports; token amounts are raw base units.
type TradeResult struct {
	Mint  solana.PublicKey
	IsBuy bool

	// GrossSolAmount is the SOL side before the fee: the buyer's payment
	// on a buy, the curve's payout on a sell.
	GrossSolAmount uint64
	// NetSolAmount is what actually reaches the reserves on a buy, or the
	// seller on a sell.
	NetSolAmount uint64
	// PlatformFee is the fee owed to the policy's fee recipient.
	PlatformFee uint64
	// TokenAmount is the token side of the trade.
	TokenAmount uint64

	// Post-trade reserves.
	VirtualSolReserves   uint64
	VirtualTokenReserves uint64
	RealSolReserves      uint64
	RealTokenReserves    uint64

	// Price and MarketCap are computed from the post-trade reserves.
	Price     uint64
	MarketCap uint64
	Timestamp int64
}

// Buy settles a purchase of tokens for grossSolIn lamports against the
// curve. The platform fee is taken from the input side, so reserves only
// ever reflect net-of-fee capital. The update is all-or-nothing: on any
// error the curve is left exactly as it was.
//
// Fund movement is the caller's job and must happen atomically with this
// state update: net SOL and fee out of the buyer, tokens out of the vault.
func Buy(bc *BondingCurve, pol PolicySnapshot, grossSolIn, minTokensOut uint64, now int64) (*TradeResult, error) {
	if pol.Paused {
		return nil, ErrProtocolPaused
	}
	if grossSolIn < MinTradeAmount {
		return nil, ErrTradeTooSmall
	}
	if bc.Graduated {
		return nil, ErrAlreadyGraduated
	}
	if bc.RealTokenReserves == 0 {
		return nil, ErrNoLiquidity
	}

	platformFee, err := pol.platformFee(grossSolIn)
	if err != nil {
		return nil, err
	}
	netSolIn, err := subChecked(grossSolIn, platformFee)
	if err != nil {
		return nil, err
	}

	tokensOut, err := bc.TokensOut(netSolIn)
	if err != nil {
		return nil, err
	}
	if tokensOut == 0 {
		return nil, ErrZeroAmount
	}
	if tokensOut < minTokensOut {
		return nil, ErrSlippageExceeded
	}
	if tokensOut > bc.RealTokenReserves {
		return nil, ErrTradeExceedsReserves
	}

	// Stage every new value before touching the curve so a late failure
	// cannot leave a partial update behind.
	virtualSol, err := addChecked(bc.VirtualSolReserves, netSolIn)
	if err != nil {
		return nil, err
	}
	virtualTokens, err := subChecked(bc.VirtualTokenReserves, tokensOut)
	if err != nil {
		return nil, err
	}
	realSol, err := addChecked(bc.RealSolReserves, netSolIn)
	if err != nil {
		return nil, err
	}
	realTokens, err := subChecked(bc.RealTokenReserves, tokensOut)
	if err != nil {
		return nil, err
	}
	tokensSold, err := addChecked(bc.TokensSold, tokensOut)
	if err != nil {
		return nil, err
	}

	next := *bc
	next.VirtualSolReserves = virtualSol
	next.VirtualTokenReserves = virtualTokens
	next.RealSolReserves = realSol
	next.RealTokenReserves = realTokens
	next.TokensSold = tokensSold

	res, err := next.tradeResult(true, grossSolIn, netSolIn, platformFee, tokensOut, now)
	if err != nil {
		return nil, err
	}
	*bc = next
	return res, nil
}

// Sell settles a sale of tokenIn tokens back to the curve. The platform
// fee is taken from the output side: the reserves release the gross quote,
// the seller receives the net. The update is all-or-nothing.
//
// The caller moves tokenIn into the vault, the net SOL to the seller and
// the fee to the fee recipient, atomically with this state update.
func Sell(bc *BondingCurve, pol PolicySnapshot, tokenIn, minSolOut uint64, now int64) (*TradeResult, error) {
	if pol.Paused {
		return nil, ErrProtocolPaused
	}
	if tokenIn == 0 {
		return nil, ErrZeroAmount
	}
	if bc.Graduated {
		return nil, ErrAlreadyGraduated
	}
	if bc.RealSolReserves == 0 {
		return nil, ErrNoLiquidity
	}

	grossSolOut, err := bc.SolOut(tokenIn)
	if err != nil {
		return nil, err
	}
	if grossSolOut == 0 {
		return nil, ErrZeroAmount
	}

	platformFee, err := pol.platformFee(grossSolOut)
	if err != nil {
		return nil, err
	}
	netSolOut, err := subChecked(grossSolOut, platformFee)
	if err != nil {
		return nil, err
	}
	if netSolOut < minSolOut {
		return nil, ErrSlippageExceeded
	}
	if grossSolOut > bc.RealSolReserves {
		return nil, ErrTradeExceedsReserves
	}

	virtualSol, err := subChecked(bc.VirtualSolReserves, grossSolOut)
	if err != nil {
		return nil, err
	}
	virtualTokens, err := addChecked(bc.VirtualTokenReserves, tokenIn)
	if err != nil {
		return nil, err
	}
	realSol, err := subChecked(bc.RealSolReserves, grossSolOut)
	if err != nil {
		return nil, err
	}
	realTokens, err := addChecked(bc.RealTokenReserves, tokenIn)
	if err != nil {
		return nil, err
	}
	tokensSold, err := subChecked(bc.TokensSold, tokenIn)
	if err != nil {
		return nil, err
	}

	next := *bc
	next.VirtualSolReserves = virtualSol
	next.VirtualTokenReserves = virtualTokens
	next.RealSolReserves = realSol
	next.RealTokenReserves = realTokens
	next.TokensSold = tokensSold

	res, err := next.tradeResult(false, grossSolOut, netSolOut, platformFee, tokenIn, now)
	if err != nil {
		return nil, err
	}
	*bc = next
	return res, nil
}

func (bc *BondingCurve) tradeResult(isBuy bool, gross, net, fee, tokenAmount uint64, now int64) (*TradeResult, error) {
	price, err := bc.CurrentPrice()
	if err != nil {
		return nil, err
	}
	marketCap, err := bc.MarketCap(TotalSupply)
	if err != nil {
		return nil, err
	}
	return &TradeResult{
		Mint:                 bc.Mint,
		IsBuy:                isBuy,
		GrossSolAmount:       gross,
		NetSolAmount:         net,
		PlatformFee:          fee,
		TokenAmount:          tokenAmount,
		VirtualSolReserves:   bc.VirtualSolReserves,
		VirtualTokenReserves: bc.VirtualTokenReserves,
		RealSolReserves:      bc.RealSolReserves,
		RealTokenReserves:    bc.RealTokenReserves,
		Price:                price,
		MarketCap:            marketCap,
		Timestamp:            now,
	}, nil
}
