package handlers

import (
	"errors"
	"net/http"
	"time"

	"gamecoins_bot/internal/config"
	"gamecoins_bot/internal/game"
	"gamecoins_bot/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Cfg       *config.Config
	Eco       *service.EconomyService
	Games     *service.GameService
	Blackjack *service.BlackjackService
	Roulette  *service.RouletteService
	Shop      *service.ShopService
}

func NewHandler(cfg *config.Config, eco *service.EconomyService) *Handler {
	return &Handler{
		Cfg:       cfg,
		Eco:       eco,
		Games:     service.NewGameService(eco),
		Blackjack: service.NewBlackjackService(eco),
		Roulette:  service.NewRouletteService(eco),
		Shop:      service.NewShopService(eco),
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (string, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return "", false
	}
	uid, ok := uidVal.(string)
	return uid, ok && uid != ""
}

// fail maps service errors to HTTP responses. Insufficiency errors carry
// enough detail to render a helpful message.
func fail(c *gin.Context, err error) {
	var shortfall *service.ShortfallError
	switch {
	case errors.As(err, &shortfall):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     shortfall.Error(),
			"shortfall": shortfall.Shortfall(),
			"balance":   shortfall.Balance,
		})
	case errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidBet),
		errors.Is(err, service.ErrSelfTransfer),
		errors.Is(err, service.ErrInvalidProduct),
		errors.Is(err, service.ErrUnknownGame),
		errors.Is(err, service.ErrUnknownCategory):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownTask),
		errors.Is(err, service.ErrUnknownJob),
		errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNothingToClaim),
		errors.Is(err, service.ErrJobIneligible),
		errors.Is(err, service.ErrNoJob),
		errors.Is(err, service.ErrProductDisabled),
		errors.Is(err, service.ErrShopDisabled),
		errors.Is(err, service.ErrAlreadyOwned),
		errors.Is(err, service.ErrHandInProgress),
		errors.Is(err, service.ErrBetPending):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoActiveHand),
		errors.Is(err, service.ErrNoBet):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrHandOver),
		errors.Is(err, game.ErrCannotDouble),
		errors.Is(err, game.ErrCannotSplit),
		errors.Is(err, game.ErrNoInsurance):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// cooldownResponse renders a cooldown rejection with the remaining wait.
func cooldownResponse(c *gin.Context, remaining time.Duration) {
	c.JSON(http.StatusConflict, gin.H{
		"error":             "job on cooldown",
		"remaining_seconds": int64(remaining.Seconds()),
	})
}
