package app

import (
	"time"

	"github.com/romain-38530/rdv-planning/internal/config"
	"github.com/romain-38530/rdv-planning/internal/http/handlers"
	"github.com/romain-38530/rdv-planning/internal/http/middleware/ratelimit"
	"github.com/romain-38530/rdv-planning/internal/http/pprofserver"
	"github.com/romain-38530/rdv-planning/internal/http/router"
	"github.com/romain-38530/rdv-planning/internal/logx"
)

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	perMinute := cfg.Planning.RateLimitPerMinute
	if perMinute <= 0 {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketPerWindow(clock, perMinute, time.Minute, 10*time.Minute, 10000)
}

func newRateLimitMiddleware(logger logx.Logger, limiter ratelimit.Limiter) *ratelimit.Middleware {
	return ratelimit.New(logger, newRateLimitExceededCounter(), limiter)
}

func newRouterDeps(
	cfg *config.Config,
	base *handlers.Handlers,
	appointments *handlers.AppointmentHandler,
	bookings *handlers.BookingHandler,
	rl *ratelimit.Middleware,
	logger logx.Logger,
) router.Deps {
	return router.Deps{
		Base:         base,
		Appointments: appointments,
		Bookings:     bookings,
		RateLimit:    rl,
		Pprof:        pprofserver.Handler(pprofserver.Config{User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}),
		Logger:       logger,
	}
}
