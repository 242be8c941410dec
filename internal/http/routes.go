package http

import (
	"os"
	"strconv"
	"time"

	"gamecoins_bot/internal/config"
	"gamecoins_bot/internal/http/handlers"
	"gamecoins_bot/internal/http/middleware"
	"gamecoins_bot/internal/metrics"
	"gamecoins_bot/internal/service"
	"gamecoins_bot/internal/store"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config, gw store.Gateway, eco *service.EconomyService, version string) *handlers.Handler {
	h := handlers.NewHandler(cfg, eco)
	healthHandler := handlers.NewHealthHandler(gw, version)

	// read limits from env, with safe defaults
	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 10
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}
	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	r.Use(metrics.Middleware())

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	gameRL := middleware.GameRateLimit(cfg.GameRateLimit, time.Duration(cfg.GameRateWindow)*time.Second)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Auth: the chat collaborator exchanges its API key for per-user tokens
	v1.POST("/auth", middleware.RedisRateLimit(authRateLimit, authRateWindow), h.Auth)

	// Account
	v1.GET("/me", middleware.JWT(), h.Me)

	// Daily tasks
	v1.GET("/tasks", middleware.JWT(), h.Tasks)
	v1.POST("/tasks/:id/progress", middleware.JWT(), h.TaskProgress)
	v1.POST("/tasks/:id/claim", middleware.JWT(), h.TaskClaim)

	// Jobs and payroll
	v1.GET("/jobs", middleware.JWT(), h.Jobs)
	v1.POST("/jobs/:id/apply", middleware.JWT(), h.JobApply)
	v1.POST("/work", middleware.JWT(), h.Work)

	// Transfers and rankings
	v1.POST("/transfer", middleware.JWT(), h.Transfer)
	v1.GET("/leaderboard", h.Leaderboard)
	v1.GET("/leaderboard/rank", middleware.JWT(), h.MyRank)

	// Single-shot games
	v1.POST("/game/coinflip", middleware.JWT(), gameRL, h.Coinflip)
	v1.POST("/game/dice", middleware.JWT(), gameRL, h.Dice)
	v1.POST("/game/slots", middleware.JWT(), gameRL, h.Slots)
	v1.GET("/game/limits", h.GameLimits)

	// Blackjack sessions
	bj := v1.Group("/game/blackjack")
	bj.Use(middleware.JWT())
	{
		bj.POST("/start", gameRL, h.BlackjackStart)
		bj.POST("/hit", gameRL, h.BlackjackHit)
		bj.POST("/stand", gameRL, h.BlackjackStand)
		bj.POST("/double", gameRL, h.BlackjackDouble)
		bj.POST("/split", gameRL, h.BlackjackSplit)
		bj.POST("/insurance", gameRL, h.BlackjackInsurance)
		bj.GET("/state", h.BlackjackState)
	}

	// Roulette bets
	rl := v1.Group("/game/roulette")
	rl.Use(middleware.JWT())
	{
		rl.POST("/bet", gameRL, h.RouletteBet)
		rl.POST("/spin", gameRL, h.RouletteSpin)
		rl.GET("/state", h.RouletteState)
	}

	// Shop
	v1.GET("/shop", middleware.JWT(), h.ShopProducts)
	v1.POST("/shop/:id/buy", middleware.JWT(), h.ShopBuy)
	v1.GET("/purchases", middleware.JWT(), h.MyPurchases)

	// Owner-only administration
	admin := v1.Group("/admin")
	admin.Use(middleware.JWT(), middleware.Owner(cfg.IsOwner))
	{
		admin.GET("/products", h.AdminProducts)
		admin.POST("/products", h.AdminAddProduct)
		admin.PATCH("/products/:id", h.AdminEditProduct)
		admin.DELETE("/products/:id", h.AdminRemoveProduct)
		admin.GET("/shop/stats", h.AdminShopStats)

		admin.POST("/coins/add", h.AdminAddCoins)
		admin.POST("/coins/remove", h.AdminRemoveCoins)
		admin.POST("/coins/set", h.AdminSetCoins)
	}

	return h
}
