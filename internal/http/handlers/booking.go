package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/romain-38530/rdv-planning/internal/apperr"
	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/logx"
	"github.com/romain-38530/rdv-planning/internal/repository"
)

const (
	msgBookingNotFound = "Reservation non trouvee"
	msgBookingInvalid  = "Requete invalide"
	msgBookingFailed   = "Erreur lors du traitement de la reservation"
)

// BookingHandler handles HTTP requests for booking resources.
type BookingHandler struct {
	usecase bookingUsecase
	logger  logx.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(logger logx.Logger, uc bookingUsecase) *BookingHandler {
	return &BookingHandler{usecase: uc, logger: logger}
}

// List handles GET /bookings.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := bookingFilterFromQuery(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, msgBookingInvalid)
		return
	}

	items, err := h.usecase.List(r.Context(), f)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, msgBookingFailed)
		return
	}
	if items == nil {
		items = []domain.Booking{}
	}
	writeJSON(h.logger, w, r, http.StatusOK, items)
}

// Get handles GET /bookings/{bookingId}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.usecase.Get(r.Context(), chi.URLParam(r, "bookingId"))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, b)
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, msgBookingNotFound)
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, msgBookingFailed)
	}
}

// CheckIn handles POST /bookings/{bookingId}/checkin.
func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	b, err := h.usecase.CheckIn(r.Context(), chi.URLParam(r, "bookingId"))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, b)
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, msgBookingNotFound)
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, msgBookingFailed)
	}
}

// CheckOut handles POST /bookings/{bookingId}/checkout.
func (h *BookingHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	b, err := h.usecase.CheckOut(r.Context(), chi.URLParam(r, "bookingId"))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, b)
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, msgBookingNotFound)
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, msgBookingFailed)
	}
}

// Cancel handles POST /bookings/{bookingId}/cancel.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelBookingRequest
	if ok := decodeJSONOptional(h.logger, w, r, &req, http.StatusBadRequest, msgBookingInvalid); !ok {
		return
	}

	b, err := h.usecase.Cancel(r.Context(), chi.URLParam(r, "bookingId"), req.CancelledBy, req.Reason)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, b)
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, msgBookingNotFound)
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, msgBookingFailed)
	}
}

func bookingFilterFromQuery(r *http.Request) (repository.BookingFilter, error) {
	q := r.URL.Query()

	var f repository.BookingFilter
	if v := q.Get("siteId"); v != "" {
		f.SiteID = &v
	}
	if v := q.Get("dockId"); v != "" {
		f.DockID = &v
	}
	if v := q.Get("status"); v != "" {
		s := domain.BookingStatus(v)
		f.Status = &s
	}
	if v := q.Get("carrierId"); v != "" {
		f.CarrierID = &v
	}
	if v := q.Get("date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return repository.BookingFilter{}, err
		}
		f.Date = &d
	}
	return f, nil
}
