package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tradewinds-bvi/tradewinds-backend/internal/database"
	"github.com/tradewinds-bvi/tradewinds-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the fixed counting window.
	RateLimitWindow = 60 * time.Second
	// RateLimitMaxRequests is the per-IP request cap inside one window.
	RateLimitMaxRequests = 120
	// RateLimitKeyPrefix is the Redis key prefix for request counters.
	RateLimitKeyPrefix = "ratelimit:"
	// BlockedIPKeyPrefix is the Redis key prefix for blocked IPs.
	BlockedIPKeyPrefix = "blocked_ip:"
	// BlockedIPDuration is how long an abusive IP stays blocked.
	BlockedIPDuration = 1 * time.Hour
)

// RateLimitMiddleware counts requests per IP in Redis and blocks IPs that
// blow past the window cap. Fails open when Redis is unavailable.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ipAddress := clientip.RealClientIP(r)
		ctx := context.Background()

		blockedKey := BlockedIPKeyPrefix + ipAddress
		isBlocked, err := database.RedisClient.Exists(ctx, blockedKey).Result()
		if err == nil && isBlocked > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Your IP has been temporarily blocked due to excessive requests. Please try again later."}`))
			return
		}

		rateLimitKey := RateLimitKeyPrefix + ipAddress

		currentCount, err := database.RedisClient.Get(ctx, rateLimitKey).Int()
		if err != nil {
			currentCount = 0
		}

		newCount := currentCount + 1

		if currentCount == 0 {
			err = database.RedisClient.Set(ctx, rateLimitKey, "1", RateLimitWindow).Err()
		} else {
			err = database.RedisClient.Incr(ctx, rateLimitKey).Err()
			if err == nil {
				database.RedisClient.Expire(ctx, rateLimitKey, RateLimitWindow)
			}
		}

		if err != nil {
			// Redis down: let traffic through.
			next.ServeHTTP(w, r)
			return
		}

		if newCount > RateLimitMaxRequests {
			if blockErr := database.RedisClient.Set(ctx, blockedKey, "1", BlockedIPDuration).Err(); blockErr != nil {
				// Still reject this request even if the block flag could not be set.
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(fmt.Sprintf(`{"error":"Rate limit exceeded. Please try again later.","retryAfter":%d}`, int(RateLimitWindow.Seconds()))))
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(RateLimitMaxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(RateLimitMaxRequests-newCount))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(RateLimitWindow).Unix(), 10))

		next.ServeHTTP(w, r)
	})
}

// UnblockIP removes an IP from the blocked list.
func UnblockIP(ipAddress string) error {
	ctx := context.Background()
	return database.RedisClient.Del(ctx, BlockedIPKeyPrefix+ipAddress).Err()
}

// IsIPBlocked reports whether an IP is currently blocked.
func IsIPBlocked(ipAddress string) (bool, error) {
	ctx := context.Background()
	count, err := database.RedisClient.Exists(ctx, BlockedIPKeyPrefix+ipAddress).Result()
	return count > 0, err
}
