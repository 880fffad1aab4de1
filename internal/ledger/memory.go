package ledger

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
)

type tokenKey struct {
	mint    solana.PublicKey
	account solana.PublicKey
}

// Memory is an in-process Ledger used by tests and the demo binary. It
// validates a whole batch before applying any of it, which gives the
// all-or-nothing behavior the engine relies on.
type Memory struct {
	mu     sync.Mutex
	sol    map[solana.PublicKey]uint64
	tokens map[tokenKey]uint64
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{
		sol:    make(map[solana.PublicKey]uint64),
		tokens: make(map[tokenKey]uint64),
	}
}

// Credit funds an account with lamports outside of any settlement, for
// seeding trader balances. Saturates at the 64-bit ceiling.
func (m *Memory) Credit(account solana.PublicKey, lamports uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sol[account] > ^uint64(0)-lamports {
		m.sol[account] = ^uint64(0)
		return
	}
	m.sol[account] += lamports
}

// Apply commits the batch atomically. Balances are staged and verified
// first; a failed debit anywhere rejects the whole batch.
func (m *Memory) Apply(_ context.Context, transfers []Transfer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stagedSol := make(map[solana.PublicKey]uint64)
	stagedTokens := make(map[tokenKey]uint64)

	solBalance := func(acc solana.PublicKey) uint64 {
		if v, ok := stagedSol[acc]; ok {
			return v
		}
		return m.sol[acc]
	}
	tokenBalance := func(k tokenKey) uint64 {
		if v, ok := stagedTokens[k]; ok {
			return v
		}
		return m.tokens[k]
	}

	for _, t := range transfers {
		switch t.Kind {
		case KindSol:
			from := solBalance(t.From)
			if from < t.Amount {
				return ErrInsufficientFunds
			}
			stagedSol[t.From] = from - t.Amount
			to := solBalance(t.To)
			if to > ^uint64(0)-t.Amount {
				return ErrBalanceOverflow
			}
			stagedSol[t.To] = to + t.Amount
		case KindToken:
			toKey := tokenKey{mint: t.Mint, account: t.To}
			if t.From.IsZero() {
				// Issuance: mint the amount at the destination.
				to := tokenBalance(toKey)
				if to > ^uint64(0)-t.Amount {
					return ErrBalanceOverflow
				}
				stagedTokens[toKey] = to + t.Amount
				continue
			}
			fromKey := tokenKey{mint: t.Mint, account: t.From}
			from := tokenBalance(fromKey)
			if from < t.Amount {
				return ErrInsufficientFunds
			}
			stagedTokens[fromKey] = from - t.Amount
			to := tokenBalance(toKey)
			if to > ^uint64(0)-t.Amount {
				return ErrBalanceOverflow
			}
			stagedTokens[toKey] = to + t.Amount
		}
	}

	for acc, v := range stagedSol {
		m.sol[acc] = v
	}
	for k, v := range stagedTokens {
		m.tokens[k] = v
	}
	return nil
}

// SolBalance returns an account's lamport balance.
func (m *Memory) SolBalance(account solana.PublicKey) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sol[account]
}

// TokenBalance returns an account's balance of a mint.
func (m *Memory) TokenBalance(mint, account solana.PublicKey) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[tokenKey{mint: mint, account: account}]
}
