package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/weapub/sj-calculadora/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// visitor is one client IP's token bucket.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateStore owns its own map so tests and multiple engines do not share state.
// Idle visitors are dropped from inside allow, at most once per purgeInterval,
// so the store needs no background goroutine.
type rateStore struct {
	rate      rate.Limit
	burst     int
	expiresIn time.Duration

	mu        sync.Mutex
	visitors  map[string]*visitor
	nextPurge time.Time
}

const purgeInterval = 5 * time.Minute

func newRateStore(limit int, window time.Duration) *rateStore {
	return &rateStore{
		rate:      rate.Limit(float64(limit) / window.Seconds()),
		burst:     limit,
		expiresIn: window * 3,
		visitors:  make(map[string]*visitor),
	}
}

func (s *rateStore) allow(ip string, now time.Time) bool {
	s.mu.Lock()
	if now.After(s.nextPurge) {
		if n := s.purgeLocked(now); n > 0 {
			log.Debug().Int("entries_purged", n).Msg("rate limiter map purged")
		}
		s.nextPurge = now.Add(purgeInterval)
	}
	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.rate, s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	s.mu.Unlock()
	return v.limiter.AllowN(now, 1)
}

// purgeLocked drops visitors idle for longer than expiresIn. Caller holds mu.
func (s *rateStore) purgeLocked(now time.Time) int {
	purged := 0
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) > s.expiresIn {
			delete(s.visitors, ip)
			purged++
		}
	}
	return purged
}

// RateLimiter allows roughly limit requests per window per client IP, with
// bursts up to limit. A limit <= 0 disables it.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	store := newRateStore(limit, window)

	return func(c *gin.Context) {
		if !store.allow(c.ClientIP(), time.Now()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}
