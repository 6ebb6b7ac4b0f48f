package handler

import (
	"errors"
	"net/http"
	"time"

	invitationdomain "botram-go/internal/domain/invitation"
	memberdomain "botram-go/internal/domain/member"
	"botram-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type invitationResponse struct {
	ID         string    `json:"id"`
	GroupID    string    `json:"group_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func toInvitationResponse(inv *invitationdomain.Invitation) invitationResponse {
	return invitationResponse{
		ID:         inv.ID,
		GroupID:    inv.GroupID,
		CustomerID: inv.CustomerID,
		Status:     string(inv.Status),
		IsActive:   inv.IsActive,
		CreatedAt:  inv.CreatedAt,
	}
}

func (h *Handlers) ListPendingInvitations(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	invitations, err := h.Invitations.ListPending(r.Context(), customerID)
	if err != nil {
		h.log.InternalError("invitations.list: list failed", err, "customer_id", customerID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]invitationResponse, 0, len(invitations))
	for i := range invitations {
		items = append(items, toInvitationResponse(&invitations[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handlers) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	invitationID := chi.URLParam(r, "invitation_id")

	result, err := h.Invitations.Accept(r.Context(), invitationID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, invitationdomain.ErrInvitationNotFound):
			h.log.BusinessError("invitations.accept: not found", err, "invitation_id", invitationID)
			writeError(w, http.StatusNotFound, "invitation_not_found", "invitation not found")
		case errors.Is(err, invitationdomain.ErrNotInvitee):
			h.log.BusinessError("invitations.accept: not invitee", err, "invitation_id", invitationID, "customer_id", customerID)
			writeError(w, http.StatusUnauthorized, "not_invitee", invitationdomain.ErrNotInvitee.Error())
		case errors.Is(err, invitationdomain.ErrInvitationResolved):
			h.log.BusinessError("invitations.accept: already resolved", err, "invitation_id", invitationID)
			writeError(w, http.StatusBadRequest, "invitation_resolved", invitationdomain.ErrInvitationResolved.Error())
		case errors.Is(err, memberdomain.ErrAlreadyInActiveGroup):
			h.log.BusinessError("invitations.accept: membership conflict", err, "customer_id", customerID)
			writeError(w, http.StatusConflict, "already_in_active_group", memberdomain.ErrAlreadyInActiveGroup.Error())
		case errors.Is(err, memberdomain.ErrGroupNotOrdering):
			h.log.BusinessError("invitations.accept: group not ordering", err, "invitation_id", invitationID)
			writeError(w, http.StatusBadRequest, "group_not_ordering", memberdomain.ErrGroupNotOrdering.Error())
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			h.log.BusinessError("invitations.accept: linked member missing", err, "invitation_id", invitationID)
			writeError(w, http.StatusNotFound, "member_not_found", "membership for this invitation no longer exists")
		case errors.Is(err, memberdomain.ErrInvalidTransition):
			h.log.BusinessError("invitations.accept: invalid transition", err, "invitation_id", invitationID)
			writeError(w, http.StatusBadRequest, "invalid_transition", memberdomain.ErrInvalidTransition.Error())
		default:
			h.log.InternalError("invitations.accept: accept failed", err, "invitation_id", invitationID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(result))
}

func (h *Handlers) RejectInvitation(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	invitationID := chi.URLParam(r, "invitation_id")

	err := h.Invitations.Reject(r.Context(), invitationID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, invitationdomain.ErrInvitationNotFound):
			h.log.BusinessError("invitations.reject: not found", err, "invitation_id", invitationID)
			writeError(w, http.StatusNotFound, "invitation_not_found", "invitation not found")
		case errors.Is(err, invitationdomain.ErrNotInvitee):
			h.log.BusinessError("invitations.reject: not invitee", err, "invitation_id", invitationID, "customer_id", customerID)
			writeError(w, http.StatusUnauthorized, "not_invitee", invitationdomain.ErrNotInvitee.Error())
		case errors.Is(err, invitationdomain.ErrInvitationResolved):
			h.log.BusinessError("invitations.reject: already resolved", err, "invitation_id", invitationID)
			writeError(w, http.StatusBadRequest, "invitation_resolved", invitationdomain.ErrInvitationResolved.Error())
		default:
			h.log.InternalError("invitations.reject: reject failed", err, "invitation_id", invitationID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}
