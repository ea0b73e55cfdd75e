package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type serverStatus struct {
	Alive       bool      `json:"alive"`
	Uptime      float64   `json:"uptime_seconds"`
	CurrentTime time.Time `json:"current_time"`
	Goroutines  int       `json:"goroutines"`
	HeapAllocMB uint64    `json:"heap_alloc_mb"`
}

type databaseStatus struct {
	Connected      bool      `json:"connected"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	LastChecked    time.Time `json:"last_checked"`
}

type healthHandler struct {
	log      *logrus.Entry
	db       Pinger
	gatherer prometheus.Gatherer
	started  time.Time
}

func NewHandler(db Pinger, gatherer prometheus.Gatherer, log *logrus.Entry) *healthHandler {
	return &healthHandler{
		log:      log,
		db:       db,
		gatherer: gatherer,
		started:  time.Now(),
	}
}

func (h *healthHandler) Register(router gin.IRouter) {
	router.GET("/health", h.server)
	router.GET("/health/database", h.database)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
}

func (h *healthHandler) server(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, serverStatus{
		Alive:       true,
		Uptime:      time.Since(h.started).Seconds(),
		CurrentTime: time.Now(),
		Goroutines:  runtime.NumGoroutine(),
		HeapAllocMB: m.HeapAlloc / 1024 / 1024,
	})
}

func (h *healthHandler) database(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	status := databaseStatus{
		Connected:      err == nil,
		ResponseTimeMs: time.Since(start).Milliseconds(),
		LastChecked:    time.Now(),
	}

	if err != nil {
		h.log.Errorf("database health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}
