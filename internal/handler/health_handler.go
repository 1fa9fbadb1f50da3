package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mahmoud-sadrian/Bsc-project/internal/ws"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports whether the database and Redis answer a ping, and how many
// devices have a status socket open on this instance
func Health(db *gorm.DB, rdb *redis.Client, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok", "redis": "ok"}
		healthy := true

		if sqlDB, err := db.DB(); err != nil {
			checks["database"], healthy = err.Error(), false
		} else if err := sqlDB.PingContext(ctx); err != nil {
			checks["database"], healthy = err.Error(), false
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			checks["redis"], healthy = err.Error(), false
		}

		status, code := "ok", http.StatusOK
		if !healthy {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":            status,
			"service":           "smartify24-api",
			"checks":            checks,
			"connected_devices": len(hub.ConnectedDeviceIDs()),
			"time":              time.Now().Format(time.RFC3339),
		})
	}
}
