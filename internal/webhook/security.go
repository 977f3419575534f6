package webhook

import (
	"crypto/subtle"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// SecurityValidator validates incoming Telegram webhook requests.
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *rateLimiter
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	return &SecurityValidator{
		config:      config,
		rateLimiter: newRateLimiter(config.RateLimitPerMin),
	}
}

// ValidateTelegramSecret compares the X-Telegram-Bot-Api-Secret-Token header
// with the configured secret in constant time.
func (v *SecurityValidator) ValidateTelegramSecret(token string) error {
	if v.config.Secret == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.config.Secret)) != 1 {
		return ErrInvalidSecret
	}
	return nil
}

// ValidateIPAddress checks if request IP is whitelisted
func (v *SecurityValidator) ValidateIPAddress(r *http.Request) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil
	}

	ip := extractIP(r)
	parsed := net.ParseIP(ip)

	for _, allowedIP := range v.config.AllowedIPs {
		if ip == allowedIP {
			return nil
		}

		if strings.Contains(allowedIP, "/") {
			_, ipNet, err := net.ParseCIDR(allowedIP)
			if err != nil {
				continue
			}
			if parsed != nil && ipNet.Contains(parsed) {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %s", ErrIPNotAllowed, ip)
}

// CheckRateLimit enforces the per-chat rate limit.
func (v *SecurityValidator) CheckRateLimit(chatID int64) error {
	return v.rateLimiter.Allow(chatID)
}

// extractIP extracts client IP from request
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	return ip
}

// rateLimiter keeps one token bucket per chat; idle buckets expire.
type rateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[int64, *rate.Limiter]
	rate     rate.Limit
	burst    int
	disabled bool
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < minBurst {
		burst = minBurst
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[int64, *rate.Limiter](
			defaultLimiterCapacity,
			nil,
			time.Minute*5,
		),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
		disabled: requestsPerMin <= 0,
	}
}

func (rl *rateLimiter) Allow(key int64) error {
	if rl.disabled {
		return nil
	}

	if !rl.bucket(key).Allow() {
		return fmt.Errorf("%w for chat %d", ErrRateLimitExceed, key)
	}
	return nil
}

// bucket returns the chat's limiter, creating it on first use.
// Lookup and insert happen under one lock so concurrent first updates share a bucket.
func (rl *rateLimiter) bucket(key int64) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter
}
