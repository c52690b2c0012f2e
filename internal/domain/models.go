// internal/domain/models.go
package domain

import (
	"creator-yield/internal/yield"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
	KindInvestment TransactionKind = "investment"
)

// Transaction — одна запись кошелька. Amount всегда положительный,
// направление задаёт Kind.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	UserID    int64           `json:"-"`
	Kind      TransactionKind `json:"kind"`
	CreatorID string          `json:"creator_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// Signed returns the balance effect of the transaction.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == KindDeposit {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Position is the invested total of one user in one creator.
type Position struct {
	CreatorID string          `json:"creator_id"`
	Invested  decimal.Decimal `json:"invested"`
}

type PortfolioEntry struct {
	CreatorID       string          `json:"creator_id"`
	Invested        decimal.Decimal `json:"invested"`
	Band            yield.Band      `json:"band"`
	LastYield       float64         `json:"last_yield"`
	MonthlyEarnings decimal.Decimal `json:"monthly_earnings"`
	ActiveInvestors int64           `json:"active_investors"`
}

type Portfolio struct {
	Balance   decimal.Decimal  `json:"balance"`
	Positions []PortfolioEntry `json:"positions"`
}
