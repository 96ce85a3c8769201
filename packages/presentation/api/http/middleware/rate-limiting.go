package middleware

import (
	"strconv"
	"time"

	Error "converter/packages/common/errors"
	"converter/packages/presentation/api/http/request"
	ResponseBody "converter/packages/presentation/data/response"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// Allows at most Requests requests per Window from the single client.
type RateLimitPolicy struct {
	// Prefix of the store keys, policies with different scopes are counted separately.
	Scope       string
	Requests    int
	Window      time.Duration
	Sensitivity EndpointSensitivity
}

// Increments counter under the key, counter is reset when window is over.
type WindowCounter interface {
	IncrementWindow(key string, window time.Duration) (int64, error)
}

type RateLimiter struct {
	counter WindowCounter
	breaker *gobreaker.CircuitBreaker[int64]
}

// Limits are tracked in memory of this instance.
func NewMemoryRateLimiter() *RateLimiter {
	return new(RateLimiter)
}

// Limits are shared between all instances using the same counter.
// If counter is failing, requests are allowed.
func NewSharedRateLimiter(counter WindowCounter) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		breaker: gobreaker.NewCircuitBreaker[int64](gobreaker.Settings{
			Name:    "rate-limiter-store",
			Timeout: time.Second * 30,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Warning("Circuit breaker "+name+" changed state: "+from.String()+" -> "+to.String(), nil)
			},
		}),
	}
}

func rateLimiterIdentifierExtractor(ctx echo.Context) (string, error) {
	return ctx.RealIP(), nil
}

func rateLimiterDenyHandler(retryAfter time.Duration) func(ctx echo.Context, id string, err error) error {
	retryAfterSeconds := max(int(retryAfter.Seconds()), 1)

	return func(ctx echo.Context, id string, err error) error {
		ctx.Response().Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))

		reqMeta := request.GetMetadata(ctx)

		GetSensitivity(ctx).logger()("Request blocked by rate limiter", reqMeta)

		return ctx.JSON(
			Error.StatusTooManyRequests.Status(),
			ResponseBody.Message{
				Message: Error.StatusTooManyRequests.Error(),
			},
		)
	}
}

func (l *RateLimiter) store(p RateLimitPolicy) (middleware.RateLimiterStore, time.Duration) {
	if l.counter == nil {
		return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Every(p.Window / time.Duration(p.Requests)),
			Burst:     p.Requests,
			ExpiresIn: p.Window * 2,
		}), p.Window / time.Duration(p.Requests)
	}

	return &sharedRateLimiterStore{
		counter: l.counter,
		breaker: l.breaker,
		scope:   p.Scope,
		limit:   int64(p.Requests),
		window:  p.Window,
	}, p.Window
}

func (l *RateLimiter) Limit(p RateLimitPolicy) echo.MiddlewareFunc {
	if p.Requests < 1 || p.Window <= 0 {
		log.Panic(
			"Failed to create rate limiter",
			"Rate limit policy "+p.Scope+" must allow at least 1 request per positive window",
			nil,
		)
	}

	store, retryAfter := l.store(p)

	limiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store:               store,
		DenyHandler:         rateLimiterDenyHandler(retryAfter),
		IdentifierExtractor: rateLimiterIdentifierExtractor,
	})
	sensitivity := Sensitivity(p.Sensitivity)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return sensitivity(limiter(next))
	}
}

// Fixed window counter on top of WindowCounter.
type sharedRateLimiterStore struct {
	counter WindowCounter
	breaker *gobreaker.CircuitBreaker[int64]
	scope   string
	limit   int64
	window  time.Duration
}

func (s *sharedRateLimiterStore) Allow(identifier string) (bool, error) {
	key := "ratelimit:" + s.scope + ":" + identifier

	count, err := s.breaker.Execute(func() (int64, error) {
		return s.counter.IncrementWindow(key, s.window)
	})
	if err != nil {
		log.Error("Rate limiter store is unavailable, request allowed", err.Error(), nil)
		return true, nil
	}

	return count <= s.limit, nil
}
