// internal/history/recorder.go
package history

import (
	"context"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/curve-engine/internal/events"
	"github.com/rovshanmuradov/curve-engine/internal/history/models"
)

// Recorder subscribes to the event bus and mirrors the audit trail into
// Storage. It runs off the hot path: a failed write is logged, never
// propagated back to the trade that produced it.
type Recorder struct {
	storage Storage
	logger  *zap.Logger
	subs    []events.Subscription
}

func NewRecorder(storage Storage, logger *zap.Logger) *Recorder {
	return &Recorder{
		storage: storage,
		logger:  logger.Named("history"),
	}
}

// Attach subscribes the recorder to the bus. Call Detach on shutdown.
func (r *Recorder) Attach(bus *events.Bus) {
	r.subs = append(r.subs,
		bus.SubscribeFunc(events.CurveInitialized, r.onCurveInitialized),
		bus.SubscribeFunc(events.CurveUpdated, r.onCurveUpdated),
		bus.SubscribeFunc(events.TradeExecuted, r.onTradeExecuted),
	)
}

func (r *Recorder) Detach() {
	for _, sub := range r.subs {
		sub.Unsubscribe()
	}
	r.subs = nil
}

func (r *Recorder) onCurveInitialized(ctx context.Context, event events.Event) error {
	e, ok := event.(events.CurveInitializedEvent)
	if !ok {
		return nil
	}

	err := r.storage.SaveCurve(ctx, &models.CurveRecord{
		CurveAddress: e.CurveAddress.String(),
		TokenMint:    e.TokenMint.String(),
		Authority:    e.Authority.String(),
		InitialPrice: e.InitialPrice,
		Slope:        e.Slope,
	})
	if err != nil {
		r.logger.Error("Failed to record curve creation",
			zap.String("curve", e.CurveAddress.String()),
			zap.Error(err))
	}
	return err
}

func (r *Recorder) onCurveUpdated(ctx context.Context, event events.Event) error {
	e, ok := event.(events.CurveUpdatedEvent)
	if !ok {
		return nil
	}

	err := r.storage.UpdateCurveParameters(ctx, e.CurveAddress.String(), e.InitialPrice, e.Slope)
	if err != nil {
		r.logger.Error("Failed to record parameter update",
			zap.String("curve", e.CurveAddress.String()),
			zap.Error(err))
	}
	return err
}

func (r *Recorder) onTradeExecuted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.TradeExecutedEvent)
	if !ok {
		return nil
	}

	err := r.storage.SaveTrade(ctx, &models.TradeRecord{
		CurveAddress: e.CurveAddress.String(),
		TokenMint:    e.TokenMint.String(),
		Trader:       e.Trader.String(),
		Side:         string(e.Side),
		Amount:       e.Amount,
		Lamports:     e.Lamports,
		SupplyAfter:  e.NewSupply,
	})
	if err != nil {
		r.logger.Error("Failed to record trade",
			zap.String("curve", e.CurveAddress.String()),
			zap.Error(err))
	}
	return err
}
