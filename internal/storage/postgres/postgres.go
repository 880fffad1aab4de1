// Package postgres implements the storage interface on PostgreSQL via
// gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"curve-launchpad/internal/storage"
	"curve-launchpad/internal/storage/models"
)

// gormLogger adapts zap to gorm's logger.Interface.
type gormLogger struct {
	zapLogger *zap.Logger
	logLevel  logger.LogLevel
}

func newGormLogger(zapLogger *zap.Logger) logger.Interface {
	return &gormLogger{
		zapLogger: zapLogger,
		logLevel:  logger.Warn,
	}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

func (l *gormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Info {
		l.zapLogger.Sugar().Infof(msg, data...)
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Warn {
		l.zapLogger.Sugar().Warnf(msg, data...)
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Error {
		l.zapLogger.Sugar().Errorf(msg, data...)
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.String("sql", sql),
		zap.Int64("rows", rows),
	}

	if err != nil {
		l.zapLogger.Error("trace", append(fields, zap.Error(err))...)
		return
	}

	if l.logLevel >= logger.Info {
		l.zapLogger.Info("trace", fields...)
	}
}

// Store implements storage.Storage on PostgreSQL.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New connects to PostgreSQL, retrying with exponential backoff until the
// database accepts the connection or ctx expires.
func New(ctx context.Context, dsn string, zapLogger *zap.Logger) (*Store, error) {
	backoffPolicy := backoff.NewExponentialBackOff()
	backoffPolicy.InitialInterval = 500 * time.Millisecond
	backoffPolicy.MaxInterval = 10 * time.Second

	notify := func(err error, duration time.Duration) {
		zapLogger.Info("Retrying postgres connection",
			zap.Error(err), zap.Duration("backoff", duration))
	}

	operation := func() (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: newGormLogger(zapLogger),
		})
	}

	db, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoffPolicy),
		backoff.WithMaxTries(10),
		backoff.WithNotify(notify))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &Store{db: db, logger: zapLogger.Named("postgres")}, nil
}

// RunMigrations creates or updates the schema.
func (s *Store) RunMigrations() error {
	if err := s.db.AutoMigrate(
		&models.CurveState{},
		&models.Trade{},
		&models.Graduation{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SaveCurveState upserts the snapshot for a mint.
func (s *Store) SaveCurveState(ctx context.Context, state *models.CurveState) error {
	var existing models.CurveState
	err := s.db.WithContext(ctx).Where("mint = ?", state.Mint).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.WithContext(ctx).Create(state).Error
	case err != nil:
		return fmt.Errorf("failed to load curve state: %w", err)
	default:
		state.ID = existing.ID
		state.CreatedAt = existing.CreatedAt
		return s.db.WithContext(ctx).Save(state).Error
	}
}

// GetCurveState loads the snapshot for a mint.
func (s *Store) GetCurveState(ctx context.Context, mint string) (*models.CurveState, error) {
	var state models.CurveState
	if err := s.db.WithContext(ctx).Where("mint = ?", mint).First(&state).Error; err != nil {
		return nil, fmt.Errorf("failed to get curve state: %w", err)
	}
	return &state, nil
}

// ListCurveStates pages through snapshots by graduation status.
func (s *Store) ListCurveStates(ctx context.Context, graduated bool, limit, offset int) ([]*models.CurveState, error) {
	var states []*models.CurveState
	err := s.db.WithContext(ctx).
		Where("graduated = ?", graduated).
		Order("curve_created_at DESC").
		Limit(limit).Offset(offset).
		Find(&states).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list curve states: %w", err)
	}
	return states, nil
}

// SaveTrade journals a settled trade.
func (s *Store) SaveTrade(ctx context.Context, trade *models.Trade) error {
	if err := s.db.WithContext(ctx).Create(trade).Error; err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}
	return nil
}

// ListTrades pages through a mint's trade history, newest first.
func (s *Store) ListTrades(ctx context.Context, mint string, limit, offset int) ([]*models.Trade, error) {
	var trades []*models.Trade
	err := s.db.WithContext(ctx).
		Where("mint = ?", mint).
		Order("settled_at DESC").
		Limit(limit).Offset(offset).
		Find(&trades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return trades, nil
}

// SaveGraduation journals a graduation.
func (s *Store) SaveGraduation(ctx context.Context, grad *models.Graduation) error {
	if err := s.db.WithContext(ctx).Create(grad).Error; err != nil {
		return fmt.Errorf("failed to save graduation: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ storage.Storage = (*Store)(nil)
