package curve

import "errors"

// Settlement errors. Each condition is distinct so callers can tell a
// retryable rejection (slippage, amount) from a terminal one (paused,
// graduated, arithmetic out of range). Every rejected transition leaves the
// curve untouched.
var (
	// ErrMathOverflow reports a checked operation whose result exceeds the
	// 64-bit range. Reserve magnitudes within the protocol's supply scale
	// never trigger it.
	ErrMathOverflow = errors.New("math operation overflow")

	// ErrMathUnderflow reports a checked subtraction below zero.
	ErrMathUnderflow = errors.New("math operation underflow")

	// ErrProtocolPaused rejects any trade or graduation while the protocol
	// is paused.
	ErrProtocolPaused = errors.New("protocol is currently paused")

	// ErrZeroAmount rejects trades that would move nothing.
	ErrZeroAmount = errors.New("zero amount not allowed")

	// ErrTradeTooSmall rejects buys below MinTradeAmount.
	ErrTradeTooSmall = errors.New("trade amount too small")

	// ErrSlippageExceeded reports a quote below the caller's minimum.
	ErrSlippageExceeded = errors.New("slippage tolerance exceeded")

	// ErrTradeExceedsReserves reports a quote larger than the real reserves
	// backing it.
	ErrTradeExceedsReserves = errors.New("trade amount exceeds available reserves")

	// ErrNoLiquidity reports a curve with nothing left to trade.
	ErrNoLiquidity = errors.New("bonding curve has no liquidity")

	// ErrAlreadyGraduated reports a trade or repeat graduation against a
	// curve in its terminal state.
	ErrAlreadyGraduated = errors.New("token has already graduated")

	// ErrNotReadyForGraduation reports a graduation attempt below the SOL
	// threshold.
	ErrNotReadyForGraduation = errors.New("token has not yet reached graduation threshold")

	// ErrInvalidInitialReserves rejects curve creation with empty virtual
	// reserves.
	ErrInvalidInitialReserves = errors.New("invalid initial reserves")
)
