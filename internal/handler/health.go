package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"proveedores/internal/dto"

	"github.com/gin-gonic/gin"
)

const (
	healthPingTimeout = 500 * time.Millisecond
	healthCacheTTL    = 5 * time.Second
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// storeProbe caches the last ping result for ttl, so a burst of liveness
// probes against a dead store costs one bounded ping.
type storeProbe struct {
	store   Pinger
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time

	mu      sync.Mutex
	checked time.Time
	last    string
}

func newStoreProbe(store Pinger, ttl, timeout time.Duration, now func() time.Time) *storeProbe {
	return &storeProbe{store: store, ttl: ttl, timeout: timeout, now: now}
}

func (p *storeProbe) status(ctx context.Context) string {
	if p.store == nil {
		return "disconnected"
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.checked.IsZero() && p.now().Sub(p.checked) < p.ttl {
		return p.last
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	p.last = "connected"
	if p.store.Ping(ctx) != nil {
		p.last = "disconnected"
	}
	p.checked = p.now()
	return p.last
}

// Health godoc
// @Summary      Liveness probe
// @Description  Siempre responde 200 mientras el proceso sirve; el estado del almacén se informa en "store".
// @Tags         health
// @Produce      json
// @Success      200  {object} dto.HealthResponse
// @Router       /health [get]
func Health(store Pinger) gin.HandlerFunc {
	return healthHandler(newStoreProbe(store, healthCacheTTL, healthPingTimeout, time.Now))
}

func healthHandler(probe *storeProbe) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:  "healthy",
			Service: "proveedores",
			Store:   probe.status(c.Request.Context()),
		})
	}
}
