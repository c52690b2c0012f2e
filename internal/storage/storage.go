// internal/storage/storage.go
package storage

import (
	"context"
	"creator-yield/internal/counter"
	"creator-yield/internal/domain"

	"github.com/shopspring/decimal"
)

type LedgerStorage interface {
	// Append stores tx only if the user's balance stays non-negative.
	// It returns ErrInsufficientFunds otherwise.
	Append(ctx context.Context, tx domain.Transaction) error
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)
	History(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error)
	Positions(ctx context.Context, userID int64) ([]domain.Position, error)
}

type CounterStorage interface {
	counter.KV
}

type Storage interface {
	LedgerStorage
	CounterStorage
	Ping(ctx context.Context) error
	Close()
}
