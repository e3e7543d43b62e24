package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/romain-38530/rdv-planning/internal/http/handlers"
	mw "github.com/romain-38530/rdv-planning/internal/http/middleware"
	"github.com/romain-38530/rdv-planning/internal/http/middleware/ratelimit"
	"github.com/romain-38530/rdv-planning/internal/logx"
)

// Deps carries everything the router mounts.
type Deps struct {
	Base         *handlers.Handlers
	Appointments *handlers.AppointmentHandler
	Bookings     *handlers.BookingHandler
	RateLimit    *ratelimit.Middleware
	Pprof        http.Handler
	Logger       logx.Logger
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(mw.Observability(d.Logger))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())
	if d.Pprof != nil {
		// the pprof mux matches absolute /debug/pprof paths, so no Mount
		// (Mount would strip the prefix)
		r.Handle("/debug/pprof/*", d.Pprof)
	}

	limited := func(r chi.Router) chi.Router {
		if d.RateLimit != nil {
			return r.With(d.RateLimit.Handler())
		}
		return r
	}

	r.Route("/appointments", func(r chi.Router) {
		r.Get("/", d.Appointments.List)
		r.Get("/pending", d.Appointments.Pending)
		r.Get("/order/{orderId}", d.Appointments.ByOrder)

		limited(r).Post("/", d.Appointments.Create)
		limited(r).Post("/auto-route", d.Appointments.AutoRoute)

		r.Route("/{requestId}", func(r chi.Router) {
			r.Get("/", d.Appointments.Get)
			limited(r).Post("/propose", d.Appointments.Propose)
			limited(r).Post("/accept", d.Appointments.Accept)
			limited(r).Post("/reject", d.Appointments.Reject)
			limited(r).Post("/message", d.Appointments.AddMessage)
			r.Delete("/", d.Appointments.Cancel)
		})
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", d.Bookings.List)
		r.Route("/{bookingId}", func(r chi.Router) {
			r.Get("/", d.Bookings.Get)
			limited(r).Post("/checkin", d.Bookings.CheckIn)
			limited(r).Post("/checkout", d.Bookings.CheckOut)
			limited(r).Post("/cancel", d.Bookings.Cancel)
		})
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
