package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamecoins_bot/internal/config"
	"gamecoins_bot/internal/db"
	httpServer "gamecoins_bot/internal/http"
	"gamecoins_bot/internal/http/middleware"
	"gamecoins_bot/internal/logger"
	"gamecoins_bot/internal/service"
	"gamecoins_bot/internal/store"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	gw, cleanup := buildGateway(cfg)
	defer cleanup()

	eco := service.NewEconomyService(gw, newRand())

	r := gin.Default()
	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	h := httpServer.RegisterRoutes(r, cfg, gw, eco, version)
	defer h.Blackjack.Close()
	defer h.Roulette.Close()

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// buildGateway selects the persistence backend from config.
func buildGateway(cfg *config.Config) (store.Gateway, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool := db.Connect(cfg.DatabaseURL)
		gw, err := store.NewPostgresGateway(ctx, pool)
		if err != nil {
			logger.Fatal("postgres gateway init failed", "error", err)
		}
		return gw, pool.Close
	case config.BackendRedis:
		gw, err := store.NewRedisGateway(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			logger.Fatal("redis gateway init failed", "error", err)
		}
		return gw, func() { _ = gw.Close() }
	case config.BackendMemory:
		return store.NewMemoryGateway(), func() {}
	default:
		return store.NewFileGateway(cfg.DataFile), func() {}
	}
}

// newRand seeds a ChaCha8 generator from the OS entropy pool.
func newRand() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		binary.LittleEndian.PutUint64(seed[:], uint64(time.Now().UnixNano()))
	}
	return rand.New(rand.NewChaCha8(seed))
}
