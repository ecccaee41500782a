package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/sigma-matching/api-server-go/internal/config"
	apperrors "github.com/sigma-matching/api-server-go/internal/errors"
)

const rateLimitKeyPrefix = "ratelimit:ip:"

var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

local windowStart = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', windowStart)

local count = redis.call('ZCARD', key)

if count >= limit then
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local resetAt = 0
    if #oldest >= 2 then
        resetAt = tonumber(oldest[2]) + window
    else
        resetAt = now + window
    end
    return {0, 0, resetAt}
end

redis.call('ZADD', key, now, now .. '-' .. math.random())
redis.call('EXPIRE', key, window + 10)

local remaining = limit - count - 1
local resetAt = now + window

return {1, remaining, resetAt}
`)

// IPRateLimiter enforces a sliding-window request budget per client IP,
// shared across instances through Redis. A Redis failure fails open: the API
// stays available without rate limiting rather than going down with Redis.
type IPRateLimiter struct {
	client *redis.Client
	limit  int
}

func NewIPRateLimiter(client *redis.Client, limitPerMin int) *IPRateLimiter {
	if limitPerMin <= 0 {
		limitPerMin = 100
	}
	return &IPRateLimiter{client: client, limit: limitPerMin}
}

func (rl *IPRateLimiter) check(ctx context.Context, ip string) (allowed bool, remaining int, resetAt int64) {
	now := time.Now().Unix()
	window := int64(config.RateLimitWindow.Seconds())
	key := rateLimitKeyPrefix + ip

	result, err := rateLimitScript.Run(ctx, rl.client, []string{key}, now, window, rl.limit).Int64Slice()
	if err != nil {
		log.Warn().Err(err).Str("ip", ip).Msg("redis rate limit check failed, allowing request")
		return true, rl.limit - 1, now + window
	}

	if len(result) != 3 {
		log.Warn().Str("ip", ip).Msg("unexpected redis rate limit result")
		return true, rl.limit - 1, now + window
	}

	return result[0] == 1, int(result[1]), result[2]
}

func (rl *IPRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// chi's RealIP middleware has already rewritten RemoteAddr from the
		// proxy headers
		allowed, remaining, resetAt := rl.check(r.Context(), r.RemoteAddr)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt, 10))

		if !allowed {
			log.Warn().Str("ip", r.RemoteAddr).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(int(config.RateLimitWindow.Seconds())))
			writeError(w, apperrors.RateLimitExceeded())
			return
		}

		next.ServeHTTP(w, r)
	})
}
