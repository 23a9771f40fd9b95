package middleware

import (
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/time/rate"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/identity"
)

// RateLimiter limits requests per caller. Authenticated callers are keyed
// by user id, others by client address. The limits are read on every
// request, so a config reload applies to existing callers too.
type RateLimiter struct {
	limits func() (perSecond float64, burst int)

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimiter allows perSecond requests per caller with the given
// burst. A perSecond of zero or less disables limiting.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return NewDynamicRateLimiter(func() (float64, int) { return perSecond, burst })
}

// NewDynamicRateLimiter is NewRateLimiter with limits looked up per request.
func NewDynamicRateLimiter(limits func() (perSecond float64, burst int)) *RateLimiter {
	return &RateLimiter{limits: limits, limiters: make(map[string]*rate.Limiter)}
}

func (l *RateLimiter) limiter(key string, limit rate.Limit, burst int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(limit, burst)
		l.limiters[key] = lim
		return lim
	}
	if lim.Limit() != limit {
		lim.SetLimit(limit)
	}
	if lim.Burst() != burst {
		lim.SetBurst(burst)
	}
	return lim
}

func callerKey(r *http.Request) string {
	if id, ok := identity.Get(r.Context()); ok {
		return "user:" + strconv.FormatInt(id.UserID, 10)
	}
	if ip := ClientIP(r); ip != nil {
		return "ip:" + ip.String()
	}
	return "ip:" + r.RemoteAddr
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		perSecond, burst := l.limits()
		if perSecond <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		if burst < 1 {
			burst = 1
		}
		if !l.limiter(callerKey(r), rate.Limit(perSecond), burst).Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, fault.CodeRateLimited, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
