package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mastercuts/BookingService/internal/api/handlers"
)

const msgTooManyRequests = "Demasiadas solicitudes. Intenta de nuevo en un momento."

const (
	// limiterIdleTTL лимитер IP без запросов дольше этого срока удаляется
	limiterIdleTTL = time.Hour
	sweepInterval  = 5 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP
// X-Forwarded-For учитывается только от доверенных прокси
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	trusted  []*net.IPNet
	now      func() time.Time
	logger   Logger
}

// NewRateLimiter requestsPerMinute запросов в минуту с запасом burst
// trustedProxies - IP или CIDR прокси, которым разрешено передавать X-Forwarded-For
func NewRateLimiter(requestsPerMinute, burst int, trustedProxies []string, logger Logger) (*RateLimiter, error) {
	trusted, err := ParseTrustedProxies(trustedProxies)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
		trusted:  trusted,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// ParseTrustedProxies разбирает список IP/CIDR; одиночный IP превращается в сеть /32 или /128
func ParseTrustedProxies(values []string) ([]*net.IPNet, error) {
	result := make([]*net.IPNet, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if strings.Contains(value, "/") {
			_, network, err := net.ParseCIDR(value)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", value, err)
			}
			result = append(result, network)
			continue
		}
		ip := net.ParseIP(value)
		if ip == nil {
			return nil, fmt.Errorf("invalid trusted proxy %q", value)
		}
		bits := 8 * net.IPv4len
		if ip.To4() == nil {
			bits = 8 * net.IPv6len
		} else {
			ip = ip.To4()
		}
		result = append(result, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return result, nil
}

func (l *RateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

// Middleware отвечает 429, когда IP исчерпал лимит
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := l.clientIP(r)
		if !l.limiter(ip).Allow() {
			l.logger.Warn("%s %s - Rate limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RunCleanup периодически удаляет простаивающие лимитеры до закрытия stopCh
func (l *RateLimiter) RunCleanup(stopCh <-chan struct{}) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := l.sweep(); removed > 0 {
				l.logger.Info("Rate limiter: evicted %d idle clients", removed)
			}
		case <-stopCh:
			return
		}
	}
}

func (l *RateLimiter) sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-limiterIdleTTL)
	removed := 0
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// clientIP адрес соединения; если он принадлежит доверенному прокси,
// берётся самый правый адрес X-Forwarded-For, не являющийся доверенным прокси
func (l *RateLimiter) clientIP(r *http.Request) string {
	peer := remoteIP(r.RemoteAddr)
	if !l.isTrusted(peer) {
		return peer
	}

	forwarded := r.Header.Values("X-Forwarded-For")
	hops := strings.Split(strings.Join(forwarded, ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if net.ParseIP(hop) == nil {
			continue
		}
		if !l.isTrusted(hop) {
			return hop
		}
	}
	return peer
}

func (l *RateLimiter) isTrusted(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, network := range l.trusted {
		if network.Contains(parsed) {
			return true
		}
	}
	return false
}

func remoteIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
