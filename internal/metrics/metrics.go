// Package metrics provides Prometheus instrumentation for the economy
// service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GamesTotal counts resolved games, partitioned by game and result
	// (win, lose, forfeit).
	GamesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamecoins_games_total",
		Help: "Total number of resolved games",
	}, []string{"game", "result"})

	// CoinsCredited is the cumulative sum of coins credited to accounts.
	CoinsCredited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamecoins_coins_credited_total",
		Help: "Cumulative coins credited",
	})

	// CoinsDebited is the cumulative sum of coins debited from accounts.
	CoinsDebited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamecoins_coins_debited_total",
		Help: "Cumulative coins debited",
	})

	// TransfersTotal counts completed user-to-user transfers.
	TransfersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamecoins_transfers_total",
		Help: "Total user-to-user transfers",
	})

	// TaskClaims counts claimed daily-task rewards.
	TaskClaims = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamecoins_task_claims_total",
		Help: "Total daily task rewards claimed",
	})

	// ShiftsWorked counts completed work shifts.
	ShiftsWorked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamecoins_shifts_worked_total",
		Help: "Total work shifts completed",
	})

	// PurchasesTotal counts completed shop purchases.
	PurchasesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamecoins_purchases_total",
		Help: "Total shop purchases",
	})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamecoins_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gamecoins_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and durations. The route pattern keeps
// the path label low-cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
