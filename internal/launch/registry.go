// Package launch keeps the descriptive metadata for every launched token.
// Descriptors are pure metadata; their only coupling to pricing is
// supplying the total supply for market-cap computation.
package launch

import (
	"errors"
	"sync"

	"github.com/gagliardetto/solana-go"

	"curve-launchpad/internal/curve"
)

// Metadata length limits.
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200
)

var (
	ErrInvalidNameLength   = errors.New("invalid token name length (1-32 characters)")
	ErrInvalidSymbolLength = errors.New("invalid token symbol length (1-10 characters)")
	ErrInvalidURILength    = errors.New("invalid URI length (max 200 characters)")

	// ErrAlreadyRegistered rejects a second descriptor for the same mint.
	ErrAlreadyRegistered = errors.New("token already registered")

	// ErrNotRegistered reports a lookup for an unknown mint.
	ErrNotRegistered = errors.New("token not registered")
)

// Asset describes one launched token.
type Asset struct {
	Mint        solana.PublicKey
	Creator     solana.PublicKey
	Name        string
	Symbol      string
	URI         string
	TotalSupply uint64
	Decimals    uint8
	CreatedAt   int64
}

// Registry is the in-memory asset descriptor store. Safe for concurrent
// use.
type Registry struct {
	mu     sync.RWMutex
	assets map[solana.PublicKey]Asset
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{assets: make(map[solana.PublicKey]Asset)}
}

// Register validates and stores a descriptor for a new mint. Every token
// launches with the protocol's fixed supply and decimals.
func (r *Registry) Register(mint, creator solana.PublicKey, name, symbol, uri string, createdAt int64) (Asset, error) {
	if len(name) == 0 || len(name) > MaxNameLength {
		return Asset{}, ErrInvalidNameLength
	}
	if len(symbol) == 0 || len(symbol) > MaxSymbolLength {
		return Asset{}, ErrInvalidSymbolLength
	}
	if len(uri) > MaxURILength {
		return Asset{}, ErrInvalidURILength
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.assets[mint]; ok {
		return Asset{}, ErrAlreadyRegistered
	}

	asset := Asset{
		Mint:        mint,
		Creator:     creator,
		Name:        name,
		Symbol:      symbol,
		URI:         uri,
		TotalSupply: curve.TotalSupply,
		Decimals:    curve.TokenDecimals,
		CreatedAt:   createdAt,
	}
	r.assets[mint] = asset
	return asset, nil
}

// Remove deletes a descriptor. Used to unwind a launch whose reserve
// issuance failed.
func (r *Registry) Remove(mint solana.PublicKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.assets, mint)
}

// Get returns the descriptor for a mint.
func (r *Registry) Get(mint solana.PublicKey) (Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	asset, ok := r.assets[mint]
	if !ok {
		return Asset{}, ErrNotRegistered
	}
	return asset, nil
}

// Len returns the number of registered tokens.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assets)
}
