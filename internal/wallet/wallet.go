// internal/wallet/wallet.go
package wallet

import (
	"context"
	"creator-yield/internal/counter"
	"creator-yield/internal/domain"
	"creator-yield/internal/storage"
	"creator-yield/internal/yield"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = storage.ErrInsufficientFunds
	ErrUnknownCreator    = errors.New("creator id is required")
)

const historyLimit = 100

var monthsPerYear = decimal.NewFromInt(12)

// Service drives deposits, withdrawals and investments into creators.
type Service struct {
	ledger   storage.LedgerStorage
	counters *counter.Counter
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(ledger storage.LedgerStorage, counters *counter.Counter, opts ...Option) *Service {
	s := &Service{
		ledger:   ledger,
		counters: counters,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (domain.Transaction, error) {
	return s.record(ctx, userID, domain.KindDeposit, "", amount)
}

func (s *Service) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (domain.Transaction, error) {
	return s.record(ctx, userID, domain.KindWithdrawal, "", amount)
}

// Invest moves amount from the wallet into creatorID and bumps the creator's
// active investor count.
func (s *Service) Invest(ctx context.Context, userID int64, creatorID string, amount decimal.Decimal) (domain.Transaction, error) {
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return domain.Transaction{}, ErrUnknownCreator
	}
	tx, err := s.record(ctx, userID, domain.KindInvestment, creatorID, amount)
	if err != nil {
		return domain.Transaction{}, err
	}
	if _, err := s.counters.Increment(ctx, creatorID); err != nil {
		// Деньги уже списаны, счётчик чисто косметический.
		slog.Warn("active investors increment failed", "creator_id", creatorID, "error", err)
	}
	return tx, nil
}

func (s *Service) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	balance, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance: %w", err)
	}
	return balance, nil
}

func (s *Service) History(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	history, err := s.ledger.History(ctx, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	if history == nil {
		history = []domain.Transaction{}
	}
	return history, nil
}

// Portfolio lists every creator the user holds, with projected monthly
// earnings at the creator's last distributed yield.
func (s *Service) Portfolio(ctx context.Context, userID int64) (domain.Portfolio, error) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return domain.Portfolio{}, err
	}
	positions, err := s.ledger.Positions(ctx, userID)
	if err != nil {
		return domain.Portfolio{}, fmt.Errorf("positions: %w", err)
	}

	entries := make([]domain.PortfolioEntry, 0, len(positions))
	for _, p := range positions {
		investors, err := s.counters.Count(ctx, p.CreatorID)
		if err != nil {
			return domain.Portfolio{}, fmt.Errorf("investors for %q: %w", p.CreatorID, err)
		}
		last := yield.SeriesFor(p.CreatorID).Last()
		entries = append(entries, domain.PortfolioEntry{
			CreatorID:       p.CreatorID,
			Invested:        p.Invested,
			Band:            yield.BandFor(p.CreatorID),
			LastYield:       last,
			MonthlyEarnings: MonthlyEarnings(p.Invested, last),
			ActiveInvestors: investors,
		})
	}

	return domain.Portfolio{Balance: balance, Positions: entries}, nil
}

// MonthlyEarnings is invested * annualPercent / 100 / 12, rounded to cents.
func MonthlyEarnings(invested decimal.Decimal, annualPercent float64) decimal.Decimal {
	return invested.
		Mul(decimal.NewFromFloat(annualPercent)).
		Div(decimal.NewFromInt(100)).
		Div(monthsPerYear).
		Round(2)
}

func (s *Service) record(ctx context.Context, userID int64, kind domain.TransactionKind, creatorID string, amount decimal.Decimal) (domain.Transaction, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return domain.Transaction{}, ErrInvalidAmount
	}

	tx := domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		CreatorID: creatorID,
		Amount:    amount,
		CreatedAt: s.now().UTC(),
	}
	if err := s.ledger.Append(ctx, tx); err != nil {
		if errors.Is(err, storage.ErrInsufficientFunds) {
			return domain.Transaction{}, ErrInsufficientFunds
		}
		return domain.Transaction{}, fmt.Errorf("%s: %w", kind, err)
	}

	slog.Info("Wallet transaction recorded", "user_id", userID, "kind", kind, "amount", amount.String(), "creator_id", creatorID)
	return tx, nil
}
