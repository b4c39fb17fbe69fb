package cors

import (
	"os"
	"strings"
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CorsMiddleware configures CORS from the ALLOWED_ORIGINS env var
// (comma-separated). Defaults to allowing all origins in development.
func CorsMiddleware() gin.HandlerFunc {
	cfg := gincors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
	}

	return gincors.New(cfg)
}
