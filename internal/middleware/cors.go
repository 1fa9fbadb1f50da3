package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mahmoud-sadrian/Bsc-project/internal/config"
)

// CORSMiddleware returns a CORS middleware configured for the given origins.
// With "*" the request origin is echoed back, so the session cookie can
// still travel with credentialed requests.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:              []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:             []string{"Content-Length"},
		AllowCredentials:          true,
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}

	if cfg.AllowAll() || len(cfg.Origins) == 0 {
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		origins := make([]string, 0, len(cfg.Origins))
		for _, o := range cfg.Origins {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		corsCfg.AllowOrigins = origins
	}

	return cors.New(corsCfg)
}
