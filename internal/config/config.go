package config

import (
	"os"
	"strconv"
	"strings"

	"gamecoins_bot/internal/logger"

	"github.com/joho/godotenv"
)

// Store backends selectable via STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	AppPort string

	StoreBackend string
	DataFile     string
	DatabaseURL  string
	RedisAddr    string
	RedisPass    string
	RedisDB      int

	JWTSecret string
	BotAPIKey string
	OwnerIDs  []string

	LogLevel string
	LogJSON  bool

	// Per-user action rate limit
	GameRateLimit  int
	GameRateWindow int
}

// IsOwner reports whether the user id is in the configured owner list.
func (c *Config) IsOwner(userID string) bool {
	for _, id := range c.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Load reads configuration from the environment, .env included.
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	botAPIKey := os.Getenv("BOT_API_KEY")
	if botAPIKey == "" {
		logger.Fatal("BOT_API_KEY is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = BackendFile
	}
	switch backend {
	case BackendFile, BackendMemory, BackendPostgres, BackendRedis:
	default:
		logger.Fatal("unknown STORE_BACKEND", "backend", backend)
	}

	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "gamecoins_data.json"
	}

	dbURL := os.Getenv("DATABASE_URL")
	if backend == BackendPostgres && dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if backend == BackendRedis && redisAddr == "" {
		logger.Fatal("REDIS_ADDR is not set")
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	// Owner ids, comma separated
	var ownerIDs []string
	for _, id := range strings.Split(os.Getenv("OWNER_IDS"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ownerIDs = append(ownerIDs, id)
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	gameRateLimit := 30
	if v := os.Getenv("GAME_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			gameRateLimit = n
		}
	}

	gameRateWindow := 60
	if v := os.Getenv("GAME_RATE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			gameRateWindow = n
		}
	}

	return &Config{
		AppPort:        port,
		StoreBackend:   backend,
		DataFile:       dataFile,
		DatabaseURL:    dbURL,
		RedisAddr:      redisAddr,
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		JWTSecret:      jwtSecret,
		BotAPIKey:      botAPIKey,
		OwnerIDs:       ownerIDs,
		LogLevel:       logLevel,
		LogJSON:        os.Getenv("LOG_JSON") == "true",
		GameRateLimit:  gameRateLimit,
		GameRateWindow: gameRateWindow,
	}
}
