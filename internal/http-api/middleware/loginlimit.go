package middleware

import (
	"net/http"
	"sync"
	"time"

	"shelfmark/internal/http-api/dto"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginLimiter throttles credential endpoints per client IP to slow brute
// forcing. This is auth hardening on two routes, not general API rate
// limiting.
type LoginLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	maxIdle  time.Duration
	lastSwep time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter allows `burst` immediate attempts per IP, refilling at
// `perMinute` attempts per minute.
func NewLoginLimiter(perMinute float64, burst int) *LoginLimiter {
	return &LoginLimiter{
		clients:  make(map[string]*clientLimiter),
		limit:    rate.Limit(perMinute / 60.0),
		burst:    burst,
		maxIdle:  10 * time.Minute,
		lastSwep: time.Now(),
	}
}

func (l *LoginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	// drop limiters for IPs not seen in a while
	if now.Sub(l.lastSwep) > l.maxIdle {
		for ip, cl := range l.clients {
			if now.Sub(cl.lastSeen) > l.maxIdle {
				delete(l.clients, ip)
			}
		}
		l.lastSwep = now
	}

	cl, ok := l.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now

	return cl.limiter.Allow()
}

// Middleware rejects over-limit attempts with 429.
func (l *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Fail("too many attempts, try again later"))
			return
		}
		c.Next()
	}
}
