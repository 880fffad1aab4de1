package curve

// Pricing is pure: nothing here mutates the curve.

// CurrentPrice returns the spot price in lamports per token, scaled by
// PriceScale. Returns 0 for a curve with no virtual token reserves.
func (bc *BondingCurve) CurrentPrice() (uint64, error) {
	if bc.VirtualTokenReserves == 0 {
		return 0, nil
	}
	return mulDiv(bc.VirtualSolReserves, PriceScale, bc.VirtualTokenReserves)
}

// MarketCap returns price * totalSupply / PriceScale in lamports.
func (bc *BondingCurve) MarketCap(totalSupply uint64) (uint64, error) {
	price, err := bc.CurrentPrice()
	if err != nil {
		return 0, err
	}
	return mulDiv(price, totalSupply, PriceScale)
}

// TokensOut quotes a buy: the tokens received for solIn lamports, from
// (x + dx) * (y - dy) = x * y. The result is clamped to the real token
// reserve; the curve never promises more tokens than it actually holds,
// even when the formula would imply more.
func (bc *BondingCurve) TokensOut(solIn uint64) (uint64, error) {
	if solIn == 0 {
		return 0, nil
	}

	newVirtualSol, err := addChecked(bc.VirtualSolReserves, solIn)
	if err != nil {
		return 0, err
	}

	// k / (x + dx), with k held in 128 bits.
	newVirtualTokens, err := mulDiv(bc.VirtualSolReserves, bc.VirtualTokenReserves, newVirtualSol)
	if err != nil {
		return 0, err
	}

	tokensOut, err := subChecked(bc.VirtualTokenReserves, newVirtualTokens)
	if err != nil {
		return 0, err
	}

	if tokensOut > bc.RealTokenReserves {
		tokensOut = bc.RealTokenReserves
	}
	return tokensOut, nil
}

// SolOut quotes a sell: the lamports received for tokenIn tokens, from
// (x - dx) * (y + dy) = x * y, clamped to the real SOL reserve.
func (bc *BondingCurve) SolOut(tokenIn uint64) (uint64, error) {
	if tokenIn == 0 {
		return 0, nil
	}

	newVirtualTokens, err := addChecked(bc.VirtualTokenReserves, tokenIn)
	if err != nil {
		return 0, err
	}

	newVirtualSol, err := mulDiv(bc.VirtualSolReserves, bc.VirtualTokenReserves, newVirtualTokens)
	if err != nil {
		return 0, err
	}

	solOut, err := subChecked(bc.VirtualSolReserves, newVirtualSol)
	if err != nil {
		return 0, err
	}

	if solOut > bc.RealSolReserves {
		solOut = bc.RealSolReserves
	}
	return solOut, nil
}
