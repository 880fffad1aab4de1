// Package storage defines the persistence boundary for curve snapshots,
// settled trades and graduations.
package storage

import (
	"context"

	"curve-launchpad/internal/storage/models"
)

// Storage is the persistence interface consumed by the engine. The engine
// treats persistence as best-effort journaling: the in-memory curve state
// remains the unit of truth for settlement.
type Storage interface {
	// Curve snapshots
	SaveCurveState(ctx context.Context, state *models.CurveState) error
	GetCurveState(ctx context.Context, mint string) (*models.CurveState, error)
	ListCurveStates(ctx context.Context, graduated bool, limit, offset int) ([]*models.CurveState, error)

	// Trades
	SaveTrade(ctx context.Context, trade *models.Trade) error
	ListTrades(ctx context.Context, mint string, limit, offset int) ([]*models.Trade, error)

	// Graduations
	SaveGraduation(ctx context.Context, grad *models.Graduation) error

	// Migrations
	RunMigrations() error

	Close() error
}
