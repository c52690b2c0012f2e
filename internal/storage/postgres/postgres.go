// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"creator-yield/internal/domain"
	"creator-yield/internal/storage"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

var _ storage.Storage = (*Storage)(nil)

// Connect opens a pool and pings it.
func Connect(ctx context.Context, dsn string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return NewStorage(pool), nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Storage) Close() {
	s.db.Close()
}

// === LedgerStorage ===

func (s *Storage) Append(ctx context.Context, t domain.Transaction) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Блокируем строки пользователя, чтобы параллельные списания не ушли в минус.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, t.UserID); err != nil {
		return fmt.Errorf("lock user ledger: %w", err)
	}

	if t.Kind != domain.KindDeposit {
		balance, err := balanceOf(ctx, tx, t.UserID)
		if err != nil {
			return err
		}
		if balance.Add(t.Signed()).IsNegative() {
			return storage.ErrInsufficientFunds
		}
	}

	var creatorID *string
	if t.CreatorID != "" {
		creatorID = &t.CreatorID
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO wallet_transactions (id, user_id, kind, creator_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.UserID, string(t.Kind), creatorID, t.Amount, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	slog.Debug("Transaction stored", "user_id", t.UserID, "kind", t.Kind, "amount", t.Amount.String())
	return nil
}

func (s *Storage) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return balanceOf(ctx, s.db, userID)
}

func (s *Storage) History(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(ctx, `
		SELECT id::text, user_id, kind, COALESCE(creator_id, ''), amount::text, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var history []domain.Transaction
	for rows.Next() {
		var (
			t             domain.Transaction
			id, kind, amt string
		)
		if err := rows.Scan(&id, &t.UserID, &kind, &t.CreatorID, &amt, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse transaction id %q: %w", id, err)
		}
		if t.Amount, err = decimal.NewFromString(amt); err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amt, err)
		}
		t.Kind = domain.TransactionKind(kind)
		history = append(history, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return history, nil
}

func (s *Storage) Positions(ctx context.Context, userID int64) ([]domain.Position, error) {
	rows, err := s.db.Query(ctx, `
		SELECT creator_id, SUM(amount)::text
		FROM wallet_transactions
		WHERE user_id = $1 AND kind = $2
		GROUP BY creator_id
		ORDER BY creator_id
	`, userID, string(domain.KindInvestment))
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	defer rows.Close()

	var positions []domain.Position
	for rows.Next() {
		var p domain.Position
		var total string
		if err := rows.Scan(&p.CreatorID, &total); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		if p.Invested, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse position total %q: %w", total, err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// === CounterStorage ===

func (s *Storage) Get(ctx context.Context, key string) (int64, bool, error) {
	var value int64
	err := s.db.QueryRow(ctx, "SELECT value FROM investor_counters WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get counter: %w", err)
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key string, value int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO investor_counters (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("set counter: %w", err)
	}
	return nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func balanceOf(ctx context.Context, q querier, userID int64) (decimal.Decimal, error) {
	var total string
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN kind = 'deposit' THEN amount ELSE -amount END), 0)::text
		FROM wallet_transactions
		WHERE user_id = $1
	`, userID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("query balance: %w", err)
	}
	balance, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse balance %q: %w", total, err)
	}
	return balance, nil
}
