// internal/storage/memory/memory.go
package memory

import (
	"context"
	"creator-yield/internal/domain"
	"creator-yield/internal/storage"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// Storage keeps ledger rows and counters in process memory.
type Storage struct {
	mu       sync.RWMutex
	ledger   map[int64][]domain.Transaction
	counters map[string]int64
}

func NewStorage() *Storage {
	return &Storage{
		ledger:   make(map[int64][]domain.Transaction),
		counters: make(map[string]int64),
	}
}

var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Ping(context.Context) error { return nil }

func (s *Storage) Close() {}

// === LedgerStorage ===

func (s *Storage) Append(ctx context.Context, tx domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	balance := sum(s.ledger[tx.UserID])
	if balance.Add(tx.Signed()).IsNegative() {
		return storage.ErrInsufficientFunds
	}
	s.ledger[tx.UserID] = append(s.ledger[tx.UserID], tx)
	return nil
}

func (s *Storage) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sum(s.ledger[userID]), nil
}

func (s *Storage) History(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	rows := append([]domain.Transaction(nil), s.ledger[userID]...)
	s.mu.RUnlock()

	// новые сверху
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *Storage) Positions(ctx context.Context, userID int64) ([]domain.Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]decimal.Decimal)
	for _, tx := range s.ledger[userID] {
		if tx.Kind != domain.KindInvestment {
			continue
		}
		totals[tx.CreatorID] = totals[tx.CreatorID].Add(tx.Amount)
	}

	positions := make([]domain.Position, 0, len(totals))
	for creatorID, invested := range totals {
		positions = append(positions, domain.Position{CreatorID: creatorID, Invested: invested})
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].CreatorID < positions[j].CreatorID
	})
	return positions, nil
}

// === CounterStorage ===

func (s *Storage) Get(ctx context.Context, key string) (int64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.counters[key]
	return v, ok, nil
}

func (s *Storage) Set(ctx context.Context, key string, value int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] = value
	return nil
}

func sum(rows []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range rows {
		total = total.Add(tx.Signed())
	}
	return total
}
