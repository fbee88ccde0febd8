package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/adopour/backend/internal/http/response"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware keeps one token bucket per client IP.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rps      rate.Limit
	burst    int
	now      func() time.Time
}

func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiters: make(map[string]*clientLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow consumes a token for key.
func (i *RateLimitMiddleware) Allow(key string) bool {
	i.mu.Lock()
	client, exists := i.limiters[key]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(i.rps, i.burst)}
		i.limiters[key] = client
	}
	client.lastSeen = i.now()
	i.mu.Unlock()

	return client.limiter.Allow()
}

// Prune forgets clients idle for longer than maxIdle and returns how many
// were dropped.
func (i *RateLimitMiddleware) Prune(maxIdle time.Duration) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	cutoff := i.now().Add(-maxIdle)
	pruned := 0
	for key, client := range i.limiters {
		if client.lastSeen.Before(cutoff) {
			delete(i.limiters, key)
			pruned++
		}
	}
	return pruned
}

// Sweep prunes idle clients every interval until ctx is done.
func (i *RateLimitMiddleware) Sweep(ctx context.Context, interval time.Duration, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			i.Prune(maxIdle)
		}
	}
}

// Gin returns an HTTP middleware answering 429 once a client runs dry.
func (i *RateLimitMiddleware) Gin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !i.Allow(c.ClientIP()) {
			response.ErrorMessage(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}

// Unary returns a gRPC unary server interceptor that performs rate limiting.
func (i *RateLimitMiddleware) Unary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		p, ok := peer.FromContext(ctx)
		if !ok {
			return nil, status.Errorf(codes.Internal, "could not get peer from context")
		}

		// Use the IP address as the key.
		ip := p.Addr.String()
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}

		if !i.Allow(ip) {
			return nil, status.Errorf(codes.ResourceExhausted, "too many requests")
		}

		return handler(ctx, req)
	}
}
