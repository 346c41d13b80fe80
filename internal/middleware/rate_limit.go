package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/internal/domain/dto"
	"github.com/guttosm/laundry-service/internal/i18n"
	"github.com/guttosm/laundry-service/internal/metrics"
)

const defaultNumShards = 16

// window tracks the fixed-window counter of one client.
type window struct {
	remaining int
	start     time.Time
}

type rateLimiterShard struct {
	mu      sync.Mutex
	clients map[string]*window
}

// RateLimiter is a fixed-window rate limiter sharded by client key.
type RateLimiter struct {
	name   string
	shards []*rateLimiterShard
	rate   int
	window time.Duration
	now    func() time.Time
	stopCh chan struct{}
	once   sync.Once
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithLimiterName sets the label reported in rate limit metrics.
func WithLimiterName(name string) RateLimiterOption {
	return func(rl *RateLimiter) { rl.name = name }
}

// WithShards sets the shard count.
func WithShards(n int) RateLimiterOption {
	return func(rl *RateLimiter) {
		if n > 0 {
			rl.shards = newShards(n)
		}
	}
}

// withClock replaces time.Now in tests.
func withClock(now func() time.Time) RateLimiterOption {
	return func(rl *RateLimiter) { rl.now = now }
}

// NewRateLimiter allows rate requests per window for each client.
// A background goroutine prunes idle clients until Stop is called.
func NewRateLimiter(rate int, window time.Duration, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		name:   "default",
		shards: newShards(defaultNumShards),
		rate:   rate,
		window: window,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rl)
	}

	go rl.cleanup()
	return rl
}

func newShards(n int) []*rateLimiterShard {
	shards := make([]*rateLimiterShard, n)
	for i := range shards {
		shards[i] = &rateLimiterShard{clients: make(map[string]*window)}
	}
	return shards
}

func (rl *RateLimiter) shard(key string) *rateLimiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// allow consumes one request for key and returns the remaining budget and the
// time until the window resets.
func (rl *RateLimiter) allow(key string) (allowed bool, remaining int, reset time.Duration) {
	s := rl.shard(key)
	now := rl.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.clients[key]
	if !ok || now.Sub(w.start) >= rl.window {
		w = &window{remaining: rl.rate, start: now}
		s.clients[key] = w
	}
	reset = rl.window - now.Sub(w.start)

	if w.remaining <= 0 {
		return false, 0, reset
	}
	w.remaining--
	return true, w.remaining, reset
}

// RateLimit limits requests per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return rl.handler(func(c *gin.Context) string { return "ip:" + c.ClientIP() })
}

// ActorRateLimit limits requests per authenticated actor and falls back to the
// client IP for anonymous requests. It must run after the auth middleware.
func (rl *RateLimiter) ActorRateLimit() gin.HandlerFunc {
	return rl.handler(clientKey)
}

func clientKey(c *gin.Context) string {
	if actor := GetActor(c); actor != AnonymousActor {
		return "actor:" + actor
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) handler(keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, reset := rl.allow(keyFunc(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			metrics.RecordRateLimited(rl.name)
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(reset.Seconds()))))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanupExpired() {
	now := rl.now()
	for _, s := range rl.shards {
		s.mu.Lock()
		for key, w := range s.clients {
			if now.Sub(w.start) > 2*rl.window {
				delete(s.clients, key)
			}
		}
		s.mu.Unlock()
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

// Clients returns the number of tracked clients.
func (rl *RateLimiter) Clients() int {
	total := 0
	for _, s := range rl.shards {
		s.mu.Lock()
		total += len(s.clients)
		s.mu.Unlock()
	}
	return total
}
