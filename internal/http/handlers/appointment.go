package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/romain-38530/rdv-planning/internal/apperr"
	"github.com/romain-38530/rdv-planning/internal/domain"
	"github.com/romain-38530/rdv-planning/internal/logx"
	"github.com/romain-38530/rdv-planning/internal/repository"
	"github.com/romain-38530/rdv-planning/internal/service/appointment"
)

// Localized error bodies of the appointment surface. This API speaks
// French to its clients; the contract is 404 for a missing document and
// 500 for everything else.
const (
	msgNotFound      = "Demande de RDV non trouvee"
	msgCreateFailed  = "Erreur lors de la creation de la demande"
	msgListFailed    = "Erreur lors de la recuperation des demandes"
	msgGetFailed     = "Erreur lors de la recuperation de la demande"
	msgRouteFailed   = "Impossible de determiner le destinataire de la demande"
	msgProposeFailed = "Erreur lors de la proposition du creneau"
	msgAcceptFailed  = "Erreur lors de la confirmation du rendez-vous"
	msgRejectFailed  = "Erreur lors du rejet de la demande"
	msgMessageFailed = "Erreur lors de l'ajout du message"
	msgCancelFailed  = "Erreur lors de l'annulation de la demande"
)

// AppointmentHandler handles HTTP requests for appointment resources.
type AppointmentHandler struct {
	usecase appointmentUsecase
	logger  logx.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(logger logx.Logger, uc appointmentUsecase) *AppointmentHandler {
	return &AppointmentHandler{usecase: uc, logger: logger}
}

// List handles GET /appointments.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	f := appointmentFilterFromQuery(r)

	items, err := h.usecase.List(r.Context(), f)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, msgListFailed)
		return
	}
	if items == nil {
		items = []domain.AppointmentRequest{}
	}
	writeJSON(h.logger, w, r, http.StatusOK, items)
}

// Pending handles GET /appointments/pending.
func (h *AppointmentHandler) Pending(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	items, err := h.usecase.Pending(r.Context(), q.Get("organizationId"), q.Get("siteId"))
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, msgListFailed)
		return
	}
	if items == nil {
		items = []domain.AppointmentRequest{}
	}
	writeJSON(h.logger, w, r, http.StatusOK, items)
}

// Get handles GET /appointments/{requestId}.
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.usecase.Get(r.Context(), chi.URLParam(r, "requestId"))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, a)
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, msgNotFound)
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, msgGetFailed)
	}
}

// ByOrder handles GET /appointments/order/{orderId}.
func (h *AppointmentHandler) ByOrder(w http.ResponseWriter, r *http.Request) {
	items, err := h.usecase.ByOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, msgListFailed)
		return
	}
	if items == nil {
		items = []domain.AppointmentRequest{}
	}
	writeJSON(h.logger, w, r, http.StatusOK, items)
}

// Create handles POST /appointments.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if ok := decodeJSON(h.logger, w, r, &req, http.StatusInternalServerError, msgCreateFailed); !ok {
		return
	}

	a, err := h.usecase.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, msgCreateFailed)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, a)
}

// AutoRoute handles POST /appointments/auto-route. It previews the routing
// decision without persisting anything.
func (h *AppointmentHandler) AutoRoute(w http.ResponseWriter, r *http.Request) {
	var req autoRouteRequest
	if ok := decodeJSON(h.logger, w, r, &req, http.StatusInternalServerError, msgRouteFailed); !ok {
		return
	}
	if req.OrderData == nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, msgRouteFailed)
		return
	}

	res, err := h.usecase.AutoRoute(*req.OrderData, req.Type)
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, msgRouteFailed)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, routeResultToResponse(res))
}

// Propose handles POST /appointments/{requestId}/propose.
func (h *AppointmentHandler) Propose(w http.ResponseWriter, r *http.Request) {
	var req proposeSlotRequest
	if ok := decodeJSON(h.logger, w, r, &req, http.StatusInternalServerError, msgProposeFailed); !ok {
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(h.logger, w, r, http.StatusInternalServerError, msgProposeFailed)
		return
	}

	a, err := h.usecase.Propose(r.Context(), chi.URLParam(r, "requestId"), in)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, a)
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, msgNotFound)
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, msgProposeFailed)
	}
}

// Accept handles POST /appointments/{requestId}/accept.
func (h *AppointmentHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req acceptRequest
	if ok := decodeJSON(h.logger, w, r, &req, http.StatusInternalServerError, msgAcceptFailed); !ok {
		return
	}

	a, err := h.usecase.Accept(r.Context(), chi.URLParam(r, "requestId"), appointment.AcceptInput{
		ConfirmedBy: req.ConfirmedBy,
		SlotID:      req.SlotID,
	})
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, a)
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, msgNotFound)
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, msgAcceptFailed)
	}
}

// Reject handles POST /appointments/{requestId}/reject.
func (h *AppointmentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if ok := decodeJSON(h.logger, w, r, &req, http.StatusInternalServerError, msgRejectFailed); !ok {
		return
	}

	a, err := h.usecase.Reject(r.Context(), chi.URLParam(r, "requestId"), appointment.RejectInput{
		RejectedBy: req.RejectedBy,
		Reason:     req.Reason,
	})
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, a)
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, msgNotFound)
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, msgRejectFailed)
	}
}

// AddMessage handles POST /appointments/{requestId}/message.
func (h *AppointmentHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	var req addMessageRequest
	if ok := decodeJSON(h.logger, w, r, &req, http.StatusInternalServerError, msgMessageFailed); !ok {
		return
	}

	a, err := h.usecase.AddMessage(r.Context(), chi.URLParam(r, "requestId"), appointment.MessageInput{
		SenderID:   req.SenderID,
		SenderName: req.SenderName,
		SenderType: req.SenderType,
		Content:    req.Content,
	})
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, a)
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, msgNotFound)
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, msgMessageFailed)
	}
}

// Cancel handles DELETE /appointments/{requestId}.
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	a, err := h.usecase.Cancel(r.Context(), chi.URLParam(r, "requestId"))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, a)
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, msgNotFound)
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, msgCancelFailed)
	}
}

func appointmentFilterFromQuery(r *http.Request) repository.AppointmentFilter {
	q := r.URL.Query()

	var f repository.AppointmentFilter
	if v := q.Get("organizationId"); v != "" {
		f.OrganizationID = &v
	}
	if v := q.Get("requesterId"); v != "" {
		f.RequesterID = &v
	}
	if v := q.Get("orderId"); v != "" {
		f.OrderID = &v
	}
	if v := q.Get("status"); v != "" {
		s := domain.AppointmentStatus(v)
		f.Status = &s
	}
	if v := q.Get("type"); v != "" {
		t := domain.AppointmentType(v)
		f.Type = &t
	}
	return f
}
