package middleware

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	db "github.com/altai-travel/booking/config/redis"
)

// getUserIDFromContext keys the limiter by the authenticated user when the
// auth middleware ran first, falling back to the client IP for public routes.
func getUserIDFromContext(c *gin.Context) string {
	if userID := c.GetString("user_id"); userID != "" {
		return userID
	}
	return c.ClientIP()
}

// createRedisStore creates a Redis-backed rate limiter store with a route-specific prefix,
// and sets the expiration based on the rate's period.
func createRedisStore(routeID string, period time.Duration) (limiter.Store, error) {
	rdb, err := db.GetRedisClient(context.Background())
	if err != nil {
		return nil, err
	}

	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:          fmt.Sprintf("rate_limiter:%s", routeID),
		MaxRetry:        3,
		CleanUpInterval: period,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis store for route %s: %w", routeID, err)
	}
	return store, nil
}

// ParseCustomRate allows formats like "10-2m", "30-20m", "5-1h", "20-10s", etc.
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(rateStr, "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	durationStr := parts[1]
	var period time.Duration

	switch {
	case strings.HasSuffix(durationStr, "s"):
		seconds, err := strconv.Atoi(strings.TrimSuffix(durationStr, "s"))
		if err != nil {
			return limiter.Rate{}, fmt.Errorf("invalid seconds duration: %v", err)
		}
		period = time.Duration(seconds) * time.Second

	case strings.HasSuffix(durationStr, "m"):
		minutes, err := strconv.Atoi(strings.TrimSuffix(durationStr, "m"))
		if err != nil {
			return limiter.Rate{}, fmt.Errorf("invalid minutes duration: %v", err)
		}
		period = time.Duration(minutes) * time.Minute

	case strings.HasSuffix(durationStr, "h"):
		hours, err := strconv.Atoi(strings.TrimSuffix(durationStr, "h"))
		if err != nil {
			return limiter.Rate{}, fmt.Errorf("invalid hours duration: %v", err)
		}
		period = time.Duration(hours) * time.Hour

	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", durationStr)
	}

	return limiter.Rate{
		Period: period,
		Limit:  int64(limit),
	}, nil
}

// NewRateLimiter creates middleware with custom periods like "10-2m" for a specific route and user.
// A limiter that cannot be constructed (no Redis in dev) degrades to a pass-through.
func NewRateLimiter(rateStr, routeID string) gin.HandlerFunc {
	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		log.Printf("Error parsing rate for route %s: %v", routeID, err)
		return func(c *gin.Context) {
			c.Next()
		}
	}

	store, err := createRedisStore(routeID, rate.Period)
	if err != nil {
		log.Printf("Error creating Redis store for route %s: %v", routeID, err)
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limiterInstance := limiter.New(store, rate)

	return ginmiddleware.NewMiddleware(limiterInstance, ginmiddleware.WithKeyGetter(func(c *gin.Context) string {
		return getUserIDFromContext(c)
	}))
}

// CombinedRateLimiter accepts multiple custom rate strings for a specific route and user.
func CombinedRateLimiter(routeID string, rateStrings ...string) gin.HandlerFunc {
	middlewares := make([]gin.HandlerFunc, len(rateStrings))
	for i, rateStr := range rateStrings {
		middlewares[i] = NewRateLimiter(rateStr, fmt.Sprintf("%s_%d", routeID, i))
	}

	return func(c *gin.Context) {
		for _, mw := range middlewares {
			mw(c)
			if c.IsAborted() {
				return
			}
		}
		c.Next()
	}
}
