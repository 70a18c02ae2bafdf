package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// GormPinger adapts a *gorm.DB to Pinger.
func GormPinger(db *gorm.DB) Pinger {
	return gormPinger{db}
}

type gormPinger struct{ db *gorm.DB }

func (p gormPinger) PingContext(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Root answers the plain-text banner used by uptime probes.
func Root(c *gin.Context) {
	c.String(http.StatusOK, "API Calculadora en funcionamiento")
}

// Health reports DB connectivity; never exposes credentials or internals.
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		if db.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok": status == http.StatusOK,
			"db": dbStatus,
		})
	}
}
