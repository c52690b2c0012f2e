// internal/handler/router.go
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	Auth    *AuthHandler
	Yield   *YieldHandler
	Wallet  *WalletHandler
	Require gin.HandlerFunc
	DB      Pinger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := deps.DB.Ping(ctx); err != nil {
			slog.Warn("Health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/api/v1")
	{
		public.POST("/login", deps.Auth.Login)
		public.GET("/creators/:id/yield", deps.Yield.GetYield)
		public.GET("/creators/:id/band", deps.Yield.GetBand)
		public.GET("/creators/:id/investors", deps.Yield.GetInvestors)
	}

	private := router.Group("/api/v1")
	private.Use(deps.Require)
	{
		private.POST("/wallet/deposit", deps.Wallet.Deposit)
		private.POST("/wallet/withdraw", deps.Wallet.Withdraw)
		private.POST("/wallet/invest", deps.Wallet.Invest)
		private.GET("/wallet/balance", deps.Wallet.Balance)
		private.GET("/wallet/history", deps.Wallet.History)
		private.GET("/portfolio", deps.Wallet.Portfolio)
	}

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
