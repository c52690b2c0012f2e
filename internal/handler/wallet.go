// internal/handler/wallet.go
package handler

import (
	"context"
	"creator-yield/internal/domain"
	"creator-yield/internal/middleware"
	"creator-yield/internal/wallet"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type WalletService interface {
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (domain.Transaction, error)
	Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (domain.Transaction, error)
	Invest(ctx context.Context, userID int64, creatorID string, amount decimal.Decimal) (domain.Transaction, error)
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)
	History(ctx context.Context, userID int64) ([]domain.Transaction, error)
	Portfolio(ctx context.Context, userID int64) (domain.Portfolio, error)
}

type WalletHandler struct {
	wallet WalletService
}

func NewWalletHandler(w WalletService) *WalletHandler {
	return &WalletHandler{wallet: w}
}

// === DTO ===

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,money"`
}

type InvestRequest struct {
	CreatorID string          `json:"creator_id" validate:"required,creatorid"`
	Amount    decimal.Decimal `json:"amount" validate:"required,money"`
}

// Deposit godoc
// @Summary Add funds to the wallet
// @Param request body AmountRequest true "Amount"
// @Success 201 {object} domain.Transaction
// @Router /api/v1/wallet/deposit [post]
func (h *WalletHandler) Deposit(c *gin.Context) {
	h.amountFlow(c, "Deposit", h.wallet.Deposit)
}

// Withdraw godoc
// @Summary Withdraw funds from the wallet
// @Param request body AmountRequest true "Amount"
// @Success 201 {object} domain.Transaction
// @Failure 409 {object} map[string]string
// @Router /api/v1/wallet/withdraw [post]
func (h *WalletHandler) Withdraw(c *gin.Context) {
	h.amountFlow(c, "Withdraw", h.wallet.Withdraw)
}

// Invest godoc
// @Summary Invest wallet funds into a creator
// @Param request body InvestRequest true "Creator and amount"
// @Success 201 {object} domain.Transaction
// @Failure 409 {object} map[string]string
// @Router /api/v1/wallet/invest [post]
func (h *WalletHandler) Invest(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req InvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.wallet.Invest(c.Request.Context(), userID, req.CreatorID, req.Amount)
	if err != nil {
		writeWalletError(c, "Invest", userID, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// Balance godoc
// @Summary Current wallet balance
// @Success 200 {object} map[string]string
// @Router /api/v1/wallet/balance [get]
func (h *WalletHandler) Balance(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	balance, err := h.wallet.Balance(c.Request.Context(), userID)
	if err != nil {
		writeWalletError(c, "Balance", userID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// History godoc
// @Summary Latest wallet transactions, newest first
// @Success 200 {array} domain.Transaction
// @Router /api/v1/wallet/history [get]
func (h *WalletHandler) History(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	history, err := h.wallet.History(c.Request.Context(), userID)
	if err != nil {
		writeWalletError(c, "History", userID, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// Portfolio godoc
// @Summary Positions with band, last yield and projected monthly earnings
// @Success 200 {object} domain.Portfolio
// @Router /api/v1/portfolio [get]
func (h *WalletHandler) Portfolio(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	portfolio, err := h.wallet.Portfolio(c.Request.Context(), userID)
	if err != nil {
		writeWalletError(c, "Portfolio", userID, err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

func (h *WalletHandler) amountFlow(c *gin.Context, op string, fn func(context.Context, int64, decimal.Decimal) (domain.Transaction, error)) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := fn(c.Request.Context(), userID, req.Amount)
	if err != nil {
		writeWalletError(c, op, userID, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func requireUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user_id missing"})
		return 0, false
	}
	return userID, true
}

func writeWalletError(c *gin.Context, op string, userID int64, err error) {
	switch {
	case errors.Is(err, wallet.ErrInsufficientFunds):
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient funds"})
	case errors.Is(err, wallet.ErrInvalidAmount), errors.Is(err, wallet.ErrUnknownCreator):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error(op+" failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
