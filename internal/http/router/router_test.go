package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/romain-38530/rdv-planning/internal/http/handlers"
	"github.com/romain-38530/rdv-planning/internal/http/pprofserver"
	"github.com/romain-38530/rdv-planning/internal/http/router"
	"github.com/romain-38530/rdv-planning/internal/logx"
)

func newTestRouter() http.Handler {
	return router.New(router.Deps{
		Base:         handlers.New(logx.Nop()),
		Appointments: &handlers.AppointmentHandler{},
		Bookings:     &handlers.BookingHandler{},
		Logger:       logx.Nop(),
	})
}

func TestNew_Ping(t *testing.T) {
	h := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestNew_Healthcheck(t *testing.T) {
	h := newTestRouter()

	req := httptest.NewRequest(http.MethodHead, "/healthcheck", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestNew_Metrics(t *testing.T) {
	h := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestNew_PprofMountedWhenConfigured(t *testing.T) {
	h := router.New(router.Deps{
		Base:         handlers.New(logx.Nop()),
		Appointments: &handlers.AppointmentHandler{},
		Bookings:     &handlers.BookingHandler{},
		Pprof:        pprofserver.Handler(pprofserver.Config{}),
		Logger:       logx.Nop(),
	})

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	req.RemoteAddr = "127.0.0.1:9"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestNew_PprofAbsentByDefault(t *testing.T) {
	h := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNew_UnknownRoute404(t *testing.T) {
	h := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}
