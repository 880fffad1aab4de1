// Package events carries the launchpad's notification payloads and an
// in-memory bus for delivering them to host-side sinks (persistence,
// webhooks, indexers).
package events

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// EventType represents the type of event.
type EventType string

const (
	TokenCreated  EventType = "token.created"
	TradeSettled  EventType = "trade.settled"
	Graduated     EventType = "curve.graduated"
	ConfigUpdated EventType = "config.updated"
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	EventType EventType
	EventTime time.Time
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

// TokenCreatedEvent is emitted when a new token and its curve are created.
type TokenCreatedEvent struct {
	BaseEvent
	Mint                        solana.PublicKey
	Creator                     solana.PublicKey
	Name                        string
	Symbol                      string
	URI                         string
	InitialVirtualSolReserves   uint64
	InitialVirtualTokenReserves uint64
	TotalSupply                 uint64
	UnixTime                    int64
}

// TradeSettledEvent is emitted on every buy or sell. It carries the full
// field set downstream sinks depend on: amounts gross and net of fee, the
// four post-trade reserve values, price and market cap.
type TradeSettledEvent struct {
	BaseEvent
	Mint                 solana.PublicKey
	Trader               solana.PublicKey
	IsBuy                bool
	GrossSolAmount       uint64
	NetSolAmount         uint64
	PlatformFee          uint64
	TokenAmount          uint64
	VirtualSolReserves   uint64
	VirtualTokenReserves uint64
	RealSolReserves      uint64
	RealTokenReserves    uint64
	Price                uint64
	MarketCap            uint64
	UnixTime             int64
}

// GraduatedEvent is emitted when a curve completes its liquidity
// migration.
type GraduatedEvent struct {
	BaseEvent
	Mint            solana.PublicKey
	Creator         solana.PublicKey
	Pool            solana.PublicKey
	FinalMarketCap  uint64
	LiquiditySol    uint64
	LiquidityTokens uint64
	CreatorReward   uint64
	PlatformFee     uint64
	UnixTime        int64
}

// ConfigUpdatedEvent is emitted when the admin path changes the global
// policy.
type ConfigUpdatedEvent struct {
	BaseEvent
	Authority      solana.PublicKey
	FeeRecipient   solana.PublicKey
	PlatformFeeBps uint16
	Paused         bool
	UnixTime       int64
}
