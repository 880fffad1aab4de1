// Package policy holds the protocol-wide configuration consulted by every
// settlement: fee rate, pause flag, fee recipient, and the cumulative
// launch/volume counters. Reads hand out a single consistent snapshot;
// mutation is gated on the configured authority.
package policy

import (
	"errors"
	"sync"

	"github.com/gagliardetto/solana-go"

	"curve-launchpad/internal/curve"
)

var (
	// ErrInvalidAuthority rejects admin mutations from anyone but the
	// configured authority.
	ErrInvalidAuthority = errors.New("invalid authority")

	// ErrInvalidPlatformFee rejects fee rates above MaxPlatformFeeBps.
	ErrInvalidPlatformFee = errors.New("invalid platform fee (max 1000 bps = 10%)")
)

// Global is the singleton protocol configuration. Created once, mutated
// only through the authority-gated admin path, never destroyed.
type Global struct {
	mu sync.RWMutex

	authority      solana.PublicKey
	feeRecipient   solana.PublicKey
	platformFeeBps uint16
	paused         bool

	totalTokensLaunched uint64
	totalVolumeSol      uint64
}

// New creates the global policy. The fee rate must not exceed
// MaxPlatformFeeBps.
func New(authority, feeRecipient solana.PublicKey, platformFeeBps uint16) (*Global, error) {
	if platformFeeBps > curve.MaxPlatformFeeBps {
		return nil, ErrInvalidPlatformFee
	}
	return &Global{
		authority:      authority,
		feeRecipient:   feeRecipient,
		platformFeeBps: platformFeeBps,
	}, nil
}

// Snapshot returns the fee rate, pause flag and fee recipient as one
// consistent view. A trade quotes against exactly one snapshot; a policy
// change mid-settlement never alters an already-computed quote.
func (g *Global) Snapshot() curve.PolicySnapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return curve.PolicySnapshot{
		FeeRecipient:   g.feeRecipient,
		PlatformFeeBps: g.platformFeeBps,
		Paused:         g.paused,
	}
}

// Authority returns the configured admin identity.
func (g *Global) Authority() solana.PublicKey {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authority
}

// Update carries the optional fields of an admin config change. Nil fields
// are left untouched.
type Update struct {
	FeeRecipient   *solana.PublicKey
	PlatformFeeBps *uint16
	Paused         *bool
}

// Apply validates and commits an admin update. The caller must be the
// configured authority; a fee above the cap rejects the whole update.
func (g *Global) Apply(authority solana.PublicKey, upd Update) (curve.PolicySnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !authority.Equals(g.authority) {
		return curve.PolicySnapshot{}, ErrInvalidAuthority
	}
	if upd.PlatformFeeBps != nil && *upd.PlatformFeeBps > curve.MaxPlatformFeeBps {
		return curve.PolicySnapshot{}, ErrInvalidPlatformFee
	}

	if upd.FeeRecipient != nil {
		g.feeRecipient = *upd.FeeRecipient
	}
	if upd.PlatformFeeBps != nil {
		g.platformFeeBps = *upd.PlatformFeeBps
	}
	if upd.Paused != nil {
		g.paused = *upd.Paused
	}

	return curve.PolicySnapshot{
		FeeRecipient:   g.feeRecipient,
		PlatformFeeBps: g.platformFeeBps,
		Paused:         g.paused,
	}, nil
}

// RecordLaunch bumps the launched-token counter.
func (g *Global) RecordLaunch() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.totalTokensLaunched++
}

// RecordVolume adds a trade's gross SOL amount to the cumulative volume,
// saturating at the 64-bit ceiling rather than wrapping.
func (g *Global) RecordVolume(lamports uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.totalVolumeSol > ^uint64(0)-lamports {
		g.totalVolumeSol = ^uint64(0)
		return
	}
	g.totalVolumeSol += lamports
}

// Stats returns the cumulative counters.
func (g *Global) Stats() (tokensLaunched, volumeSol uint64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.totalTokensLaunched, g.totalVolumeSol
}
