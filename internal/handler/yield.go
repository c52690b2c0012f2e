// internal/handler/yield.go
package handler

import (
	"context"
	"creator-yield/internal/yield"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	val "creator-yield/internal/validator"

	"github.com/gin-gonic/gin"
)

type InvestorCounter interface {
	Count(ctx context.Context, creatorID string) (int64, error)
}

type YieldHandler struct {
	investors InvestorCounter
	rolling   bool
	now       func() time.Time
}

// NewYieldHandler serves creator yield data. With rolling set, series labels
// end at the current month instead of December.
func NewYieldHandler(investors InvestorCounter, rolling bool) *YieldHandler {
	return &YieldHandler{investors: investors, rolling: rolling, now: time.Now}
}

// GetYield godoc
// @Summary Band, 12-month series and last distributed yield of a creator
// @Param id path string true "Creator id"
// @Param end query int false "Month number (1-12) the series ends at"
// @Success 200 {object} yield.Snapshot
// @Failure 400 {object} map[string]string
// @Router /api/v1/creators/{id}/yield [get]
func (h *YieldHandler) GetYield(c *gin.Context) {
	creatorID, ok := creatorParam(c)
	if !ok {
		return
	}

	end, err := h.endMonth(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be a month number between 1 and 12"})
		return
	}

	c.JSON(http.StatusOK, yield.SnapshotFor(creatorID, end))
}

// GetBand godoc
// @Summary Yield band of a creator
// @Param id path string true "Creator id"
// @Success 200 {object} yield.Band
// @Router /api/v1/creators/{id}/band [get]
func (h *YieldHandler) GetBand(c *gin.Context) {
	creatorID, ok := creatorParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, yield.BandFor(creatorID))
}

// GetInvestors godoc
// @Summary Active investors of a creator
// @Param id path string true "Creator id"
// @Success 200 {object} map[string]any
// @Router /api/v1/creators/{id}/investors [get]
func (h *YieldHandler) GetInvestors(c *gin.Context) {
	creatorID, ok := creatorParam(c)
	if !ok {
		return
	}
	count, err := h.investors.Count(c.Request.Context(), creatorID)
	if err != nil {
		slog.Error("Investor count failed", "error", err, "creator_id", creatorID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"creator_id": creatorID, "active_investors": count})
}

func (h *YieldHandler) endMonth(raw string) (time.Month, error) {
	if raw == "" {
		if h.rolling {
			return h.now().Month(), nil
		}
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > 12 {
		return 0, strconv.ErrRange
	}
	return time.Month(n), nil
}

func creatorParam(c *gin.Context) (string, bool) {
	creatorID := c.Param("id")
	if !val.ValidCreatorID(creatorID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid creator id"})
		return "", false
	}
	return creatorID, true
}
