// Package engine hosts the bonding-curve settlement engine: it owns the
// live curve states, serializes mutating operations per mint, and settles
// trades and graduations against the ledger in lockstep with the state
// update.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"curve-launchpad/internal/curve"
	"curve-launchpad/internal/events"
	"curve-launchpad/internal/launch"
	"curve-launchpad/internal/ledger"
	"curve-launchpad/internal/observability"
	"curve-launchpad/internal/policy"
	"curve-launchpad/internal/storage"
	"curve-launchpad/internal/storage/models"
)

// LiquidityMigrator creates the downstream liquidity pool at graduation
// and returns its identity. The engine only hands off the computed
// amounts; pool mechanics live behind this interface.
type LiquidityMigrator interface {
	CreatePool(ctx context.Context, mint solana.PublicKey, solAmount, tokenAmount uint64) (solana.PublicKey, error)
}

// HoldingMigrator parks graduation liquidity on a single holding account
// for an external process to pick up. Used until a real AMM integration is
// plugged in.
type HoldingMigrator struct {
	Account solana.PublicKey
}

// CreatePool returns the holding account as the pool identity.
func (h HoldingMigrator) CreatePool(_ context.Context, _ solana.PublicKey, _, _ uint64) (solana.PublicKey, error) {
	return h.Account, nil
}

// market pairs a curve with its lock. The mutex is what guarantees the
// one-mutator-at-a-time property for a single mint; different mints settle
// fully in parallel.
type market struct {
	mu    sync.Mutex
	curve *curve.BondingCurve
	// vault is the identity holding the curve's SOL and unsold tokens on
	// the ledger. Keyed by the mint itself.
	vault solana.PublicKey
}

// Config wires an Engine. Logger, Policy, Registry and Ledger are
// required; Store, Bus, Metrics and Migrator are optional.
type Config struct {
	Logger   *zap.Logger
	Policy   *policy.Global
	Registry *launch.Registry
	Ledger   ledger.Ledger
	Store    storage.Storage
	Bus      *events.Bus
	Metrics  *observability.Metrics
	Migrator LiquidityMigrator
	// Clock supplies settlement timestamps; defaults to time.Now.
	Clock func() time.Time
}

// Engine is the settlement orchestrator.
type Engine struct {
	logger   *zap.Logger
	policy   *policy.Global
	registry *launch.Registry
	ledger   ledger.Ledger
	store    storage.Storage
	bus      *events.Bus
	metrics  *observability.Metrics
	migrator LiquidityMigrator
	clock    func() time.Time

	mu      sync.RWMutex
	markets map[solana.PublicKey]*market
}

// New creates an Engine from the config.
func New(cfg Config) (*Engine, error) {
	if cfg.Logger == nil || cfg.Policy == nil || cfg.Registry == nil || cfg.Ledger == nil {
		return nil, fmt.Errorf("engine requires logger, policy, registry and ledger")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	migrator := cfg.Migrator
	if migrator == nil {
		migrator = HoldingMigrator{}
	}
	return &Engine{
		logger:   cfg.Logger.Named("engine"),
		policy:   cfg.Policy,
		registry: cfg.Registry,
		ledger:   cfg.Ledger,
		store:    cfg.Store,
		bus:      cfg.Bus,
		metrics:  cfg.Metrics,
		migrator: migrator,
		clock:    clock,
		markets:  make(map[solana.PublicKey]*market),
	}, nil
}

// CreateToken registers a token's metadata, seeds its bonding curve with
// the default virtual reserves, and issues the initial real token reserve
// to the curve's vault.
func (e *Engine) CreateToken(ctx context.Context, creator, mint solana.PublicKey, name, symbol, uri string) (launch.Asset, error) {
	snap := e.policy.Snapshot()
	if snap.Paused {
		return launch.Asset{}, curve.ErrProtocolPaused
	}

	// A restored market may exist without a registry entry, since metadata
	// is not persisted. Reject before issuing anything: re-creating a live
	// mint would replace its curve and double-issue the reserve.
	e.mu.RLock()
	_, exists := e.markets[mint]
	e.mu.RUnlock()
	if exists {
		return launch.Asset{}, launch.ErrAlreadyRegistered
	}

	now := e.clock().Unix()
	asset, err := e.registry.Register(mint, creator, name, symbol, uri, now)
	if err != nil {
		return launch.Asset{}, err
	}

	bc := curve.NewBondingCurve(mint, creator, now)

	if err := e.ledger.Apply(ctx, []ledger.Transfer{{
		Kind:   ledger.KindToken,
		Mint:   mint,
		To:     mint, // vault
		Amount: curve.InitialRealTokenReserves,
	}}); err != nil {
		// Unwind the registration so the mint stays creatable.
		e.registry.Remove(mint)
		return launch.Asset{}, fmt.Errorf("failed to issue initial reserves: %w", err)
	}

	e.mu.Lock()
	e.markets[mint] = &market{curve: bc, vault: mint}
	e.mu.Unlock()

	e.policy.RecordLaunch()
	if e.metrics != nil {
		e.metrics.TokensLaunched.Inc()
		e.metrics.ActiveCurves.Inc()
	}

	e.persistCurve(ctx, bc)
	e.publish(&events.TokenCreatedEvent{
		BaseEvent:                   events.BaseEvent{EventType: events.TokenCreated, EventTime: e.clock()},
		Mint:                        mint,
		Creator:                     creator,
		Name:                        name,
		Symbol:                      symbol,
		URI:                         uri,
		InitialVirtualSolReserves:   bc.VirtualSolReserves,
		InitialVirtualTokenReserves: bc.VirtualTokenReserves,
		TotalSupply:                 asset.TotalSupply,
		UnixTime:                    now,
	})

	e.logger.Info("Token created",
		zap.String("mint", mint.String()),
		zap.String("creator", creator.String()),
		zap.String("symbol", symbol))

	return asset, nil
}

// Buy settles a purchase for the trader. The ledger batch and the curve
// update commit together or not at all.
func (e *Engine) Buy(ctx context.Context, trader, mint solana.PublicKey, grossSolIn, minTokensOut uint64) (*curve.TradeResult, error) {
	start := e.clock()
	m, err := e.market(mint)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := e.policy.Snapshot()
	next := *m.curve
	res, err := curve.Buy(&next, snap, grossSolIn, minTokensOut, e.clock().Unix())
	if err != nil {
		e.countRejection("buy", err)
		return nil, err
	}

	transfers := []ledger.Transfer{
		{Kind: ledger.KindSol, From: trader, To: m.vault, Amount: res.NetSolAmount},
		{Kind: ledger.KindToken, Mint: mint, From: m.vault, To: trader, Amount: res.TokenAmount},
	}
	if res.PlatformFee > 0 {
		transfers = append(transfers, ledger.Transfer{
			Kind: ledger.KindSol, From: trader, To: snap.FeeRecipient, Amount: res.PlatformFee,
		})
	}
	if err := e.ledger.Apply(ctx, transfers); err != nil {
		e.countRejection("buy", err)
		return nil, fmt.Errorf("failed to settle buy: %w", err)
	}

	*m.curve = next
	e.finishTrade(ctx, m.curve, trader, res, "buy", start)
	return res, nil
}

// Sell settles a sale for the trader, symmetric to Buy.
func (e *Engine) Sell(ctx context.Context, trader, mint solana.PublicKey, tokenIn, minSolOut uint64) (*curve.TradeResult, error) {
	start := e.clock()
	m, err := e.market(mint)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := e.policy.Snapshot()
	next := *m.curve
	res, err := curve.Sell(&next, snap, tokenIn, minSolOut, e.clock().Unix())
	if err != nil {
		e.countRejection("sell", err)
		return nil, err
	}

	transfers := []ledger.Transfer{
		{Kind: ledger.KindToken, Mint: mint, From: trader, To: m.vault, Amount: res.TokenAmount},
		{Kind: ledger.KindSol, From: m.vault, To: trader, Amount: res.NetSolAmount},
	}
	if res.PlatformFee > 0 {
		transfers = append(transfers, ledger.Transfer{
			Kind: ledger.KindSol, From: m.vault, To: snap.FeeRecipient, Amount: res.PlatformFee,
		})
	}
	if err := e.ledger.Apply(ctx, transfers); err != nil {
		e.countRejection("sell", err)
		return nil, fmt.Errorf("failed to settle sell: %w", err)
	}

	*m.curve = next
	e.finishTrade(ctx, m.curve, trader, res, "sell", start)
	return res, nil
}

// Graduate performs the one-shot liquidity migration. Only the token's
// creator may trigger it.
func (e *Engine) Graduate(ctx context.Context, caller, mint solana.PublicKey) (*curve.GraduationResult, error) {
	start := e.clock()
	m, err := e.market(mint)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !caller.Equals(m.curve.Creator) {
		return nil, policy.ErrInvalidAuthority
	}

	snap := e.policy.Snapshot()
	next := *m.curve
	res, err := curve.Graduate(&next, snap, e.clock().Unix())
	if err != nil {
		e.countRejection("graduate", err)
		return nil, err
	}

	pool, err := e.migrator.CreatePool(ctx, mint, res.LiquiditySol, res.LiquidityTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to create liquidity pool: %w", err)
	}

	transfers := []ledger.Transfer{
		{Kind: ledger.KindSol, From: m.vault, To: m.curve.Creator, Amount: res.CreatorReward},
		{Kind: ledger.KindSol, From: m.vault, To: snap.FeeRecipient, Amount: res.PlatformFee},
		{Kind: ledger.KindSol, From: m.vault, To: pool, Amount: res.LiquiditySol},
		{Kind: ledger.KindToken, Mint: mint, From: m.vault, To: pool, Amount: res.LiquidityTokens},
	}
	if err := e.ledger.Apply(ctx, transfers); err != nil {
		return nil, fmt.Errorf("failed to settle graduation: %w", err)
	}

	*m.curve = next

	if e.metrics != nil {
		e.metrics.GraduationsTotal.Inc()
		e.metrics.ActiveCurves.Dec()
		e.metrics.SettlementLatency.WithLabelValues("graduate").
			Observe(e.clock().Sub(start).Seconds())
	}

	e.persistCurve(ctx, m.curve)
	if e.store != nil {
		if err := e.store.SaveGraduation(ctx, &models.Graduation{
			Mint:            mint.String(),
			Creator:         res.Creator.String(),
			Pool:            pool.String(),
			FinalMarketCap:  res.FinalMarketCap,
			LiquiditySol:    res.LiquiditySol,
			LiquidityTokens: res.LiquidityTokens,
			CreatorReward:   res.CreatorReward,
			PlatformFee:     res.PlatformFee,
			GraduatedAt:     res.Timestamp,
		}); err != nil {
			e.logger.Error("Failed to persist graduation",
				zap.String("mint", mint.String()), zap.Error(err))
		}
	}

	e.publish(&events.GraduatedEvent{
		BaseEvent:       events.BaseEvent{EventType: events.Graduated, EventTime: e.clock()},
		Mint:            mint,
		Creator:         res.Creator,
		Pool:            pool,
		FinalMarketCap:  res.FinalMarketCap,
		LiquiditySol:    res.LiquiditySol,
		LiquidityTokens: res.LiquidityTokens,
		CreatorReward:   res.CreatorReward,
		PlatformFee:     res.PlatformFee,
		UnixTime:        res.Timestamp,
	})

	e.logger.Info("Curve graduated",
		zap.String("mint", mint.String()),
		zap.Uint64("liquidity_sol", res.LiquiditySol),
		zap.Uint64("liquidity_tokens", res.LiquidityTokens),
		zap.String("pool", pool.String()))

	return res, nil
}

// UpdateConfig applies an authority-gated policy change and emits the
// resulting configuration.
func (e *Engine) UpdateConfig(_ context.Context, authority solana.PublicKey, upd policy.Update) error {
	snap, err := e.policy.Apply(authority, upd)
	if err != nil {
		return err
	}

	now := e.clock()
	e.publish(&events.ConfigUpdatedEvent{
		BaseEvent:      events.BaseEvent{EventType: events.ConfigUpdated, EventTime: now},
		Authority:      authority,
		FeeRecipient:   snap.FeeRecipient,
		PlatformFeeBps: snap.PlatformFeeBps,
		Paused:         snap.Paused,
		UnixTime:       now.Unix(),
	})

	e.logger.Info("Config updated",
		zap.Uint16("platform_fee_bps", snap.PlatformFeeBps),
		zap.Bool("paused", snap.Paused))
	return nil
}

// Curve returns a copy of the live curve state for a mint.
func (e *Engine) Curve(mint solana.PublicKey) (curve.BondingCurve, error) {
	m, err := e.market(mint)
	if err != nil {
		return curve.BondingCurve{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.curve, nil
}

// Restore reloads curve states persisted by a previous run. Metadata is
// not restored; the registry only learns about tokens created through
// CreateToken.
func (e *Engine) Restore(ctx context.Context) error {
	if e.store == nil {
		return nil
	}

	restored := 0
	for _, graduated := range []bool{false, true} {
		for offset := 0; ; offset += restoreBatchSize {
			states, err := e.store.ListCurveStates(ctx, graduated, restoreBatchSize, offset)
			if err != nil {
				return fmt.Errorf("failed to restore curve states: %w", err)
			}
			for _, st := range states {
				bc, err := curveFromModel(st)
				if err != nil {
					e.logger.Warn("Skipping unrestorable curve state",
						zap.String("mint", st.Mint), zap.Error(err))
					continue
				}
				e.mu.Lock()
				e.markets[bc.Mint] = &market{curve: bc, vault: bc.Mint}
				e.mu.Unlock()
				restored++
				if e.metrics != nil && !bc.Graduated {
					e.metrics.ActiveCurves.Inc()
				}
			}
			if len(states) < restoreBatchSize {
				break
			}
		}
	}

	e.logger.Info("Curve states restored", zap.Int("count", restored))
	return nil
}

const restoreBatchSize = 500

func curveFromModel(st *models.CurveState) (*curve.BondingCurve, error) {
	mint, err := solana.PublicKeyFromBase58(st.Mint)
	if err != nil {
		return nil, fmt.Errorf("invalid mint: %w", err)
	}
	creator, err := solana.PublicKeyFromBase58(st.Creator)
	if err != nil {
		return nil, fmt.Errorf("invalid creator: %w", err)
	}
	return &curve.BondingCurve{
		Mint:                 mint,
		Creator:              creator,
		VirtualSolReserves:   st.VirtualSolReserves,
		VirtualTokenReserves: st.VirtualTokenReserves,
		RealSolReserves:      st.RealSolReserves,
		RealTokenReserves:    st.RealTokenReserves,
		TokensSold:           st.TokensSold,
		Graduated:            st.Graduated,
		CreatedAt:            st.CurveCreatedAt,
		GraduatedAt:          st.GraduatedAt,
	}, nil
}

func (e *Engine) market(mint solana.PublicKey) (*market, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.markets[mint]
	if !ok {
		return nil, launch.ErrNotRegistered
	}
	return m, nil
}

// finishTrade runs the common post-commit path: counters, persistence,
// event emission. Called with the market lock held.
func (e *Engine) finishTrade(ctx context.Context, bc *curve.BondingCurve, trader solana.PublicKey, res *curve.TradeResult, side string, start time.Time) {
	e.policy.RecordVolume(res.GrossSolAmount)

	if e.metrics != nil {
		e.metrics.TradesTotal.WithLabelValues(side).Inc()
		e.metrics.TradeVolumeSol.WithLabelValues(side).Add(float64(res.GrossSolAmount))
		e.metrics.SettlementLatency.WithLabelValues(side).
			Observe(e.clock().Sub(start).Seconds())
	}

	e.persistCurve(ctx, bc)
	if e.store != nil {
		if err := e.store.SaveTrade(ctx, &models.Trade{
			Mint:                 res.Mint.String(),
			Trader:               trader.String(),
			IsBuy:                res.IsBuy,
			GrossSolAmount:       res.GrossSolAmount,
			NetSolAmount:         res.NetSolAmount,
			PlatformFee:          res.PlatformFee,
			TokenAmount:          res.TokenAmount,
			VirtualSolReserves:   res.VirtualSolReserves,
			VirtualTokenReserves: res.VirtualTokenReserves,
			RealSolReserves:      res.RealSolReserves,
			RealTokenReserves:    res.RealTokenReserves,
			Price:                res.Price,
			MarketCap:            res.MarketCap,
			SettledAt:            res.Timestamp,
		}); err != nil {
			e.logger.Error("Failed to persist trade",
				zap.String("mint", res.Mint.String()), zap.Error(err))
		}
	}

	e.publish(&events.TradeSettledEvent{
		BaseEvent:            events.BaseEvent{EventType: events.TradeSettled, EventTime: e.clock()},
		Mint:                 res.Mint,
		Trader:               trader,
		IsBuy:                res.IsBuy,
		GrossSolAmount:       res.GrossSolAmount,
		NetSolAmount:         res.NetSolAmount,
		PlatformFee:          res.PlatformFee,
		TokenAmount:          res.TokenAmount,
		VirtualSolReserves:   res.VirtualSolReserves,
		VirtualTokenReserves: res.VirtualTokenReserves,
		RealSolReserves:      res.RealSolReserves,
		RealTokenReserves:    res.RealTokenReserves,
		Price:                res.Price,
		MarketCap:            res.MarketCap,
		UnixTime:             res.Timestamp,
	})
}

func (e *Engine) persistCurve(ctx context.Context, bc *curve.BondingCurve) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveCurveState(ctx, &models.CurveState{
		Mint:                 bc.Mint.String(),
		Creator:              bc.Creator.String(),
		VirtualSolReserves:   bc.VirtualSolReserves,
		VirtualTokenReserves: bc.VirtualTokenReserves,
		RealSolReserves:      bc.RealSolReserves,
		RealTokenReserves:    bc.RealTokenReserves,
		TokensSold:           bc.TokensSold,
		Graduated:            bc.Graduated,
		CurveCreatedAt:       bc.CreatedAt,
		GraduatedAt:          bc.GraduatedAt,
	}); err != nil {
		e.logger.Error("Failed to persist curve state",
			zap.String("mint", bc.Mint.String()), zap.Error(err))
	}
}

func (e *Engine) publish(event events.Event) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(event); err != nil {
		e.logger.Warn("Failed to publish event",
			zap.String("event_type", string(event.Type())), zap.Error(err))
	}
}

func (e *Engine) countRejection(side string, err error) {
	if e.metrics == nil {
		return
	}
	e.metrics.TradeRejections.WithLabelValues(side, rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, curve.ErrProtocolPaused):
		return "paused"
	case errors.Is(err, curve.ErrTradeTooSmall):
		return "too_small"
	case errors.Is(err, curve.ErrZeroAmount):
		return "zero_amount"
	case errors.Is(err, curve.ErrSlippageExceeded):
		return "slippage"
	case errors.Is(err, curve.ErrTradeExceedsReserves):
		return "exceeds_reserves"
	case errors.Is(err, curve.ErrNoLiquidity):
		return "no_liquidity"
	case errors.Is(err, curve.ErrAlreadyGraduated):
		return "graduated"
	case errors.Is(err, curve.ErrNotReadyForGraduation):
		return "not_ready"
	case errors.Is(err, curve.ErrMathOverflow), errors.Is(err, curve.ErrMathUnderflow):
		return "arithmetic"
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "insufficient_funds"
	default:
		return "internal"
	}
}
