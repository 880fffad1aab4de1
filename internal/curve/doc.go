// Package curve implements the bonding-curve settlement engine for the
// launchpad: a virtual constant-product market that prices buys and sells
// against per-token reserves, and a one-shot graduation transition that
// splits the raised SOL for downstream liquidity migration.
//
// All arithmetic is checked. Multiplications that feed a division are
// carried out in a 128-bit intermediate before dividing back down to 64
// bits, and every division truncates toward zero, which rounds in favor of
// the curve by at most one base unit per trade.
//
// Key types and functions:
//
//   - BondingCurve: per-token reserve state, the unit of truth every
//     settlement operation reads and mutates.
//   - PolicySnapshot: the protocol-level inputs (fee, pause flag) a single
//     settlement observes as one consistent view.
//   - Buy(), Sell(): validate, quote, apply the platform fee and commit an
//     all-or-nothing reserve update, returning a TradeResult.
//   - Graduate(): the terminal transition once the SOL threshold is
//     reached, returning a GraduationResult with the 85/10/5 split.
//
// The package performs no I/O and never moves funds; callers settle the
// returned amounts against their ledger in lockstep with the state update.
package curve
