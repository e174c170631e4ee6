// internal/history/history.go
package history

import (
	"context"

	"github.com/rovshanmuradov/curve-engine/internal/history/models"
)

// Storage persists the trade and curve audit trail.
type Storage interface {
	// Trades
	SaveTrade(ctx context.Context, trade *models.TradeRecord) error
	ListTrades(ctx context.Context, curveAddress string, limit, offset int) ([]*models.TradeRecord, error)

	// Curves
	SaveCurve(ctx context.Context, curve *models.CurveRecord) error
	GetCurve(ctx context.Context, curveAddress string) (*models.CurveRecord, error)
	UpdateCurveParameters(ctx context.Context, curveAddress string, initialPrice, slope uint64) error

	RunMigrations() error
	Close() error
}
