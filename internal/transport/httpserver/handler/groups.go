package handler

import (
	"errors"
	"net/http"
	"time"

	groupdomain "botram-go/internal/domain/group"
	memberdomain "botram-go/internal/domain/member"
	"botram-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createGroupRequest struct {
	RestaurantID   string   `json:"restaurant_id"`
	Name           string   `json:"name"`
	OpenMembership bool     `json:"open_membership"`
	InviteeIDs     []string `json:"invitee_ids"`
}

type groupResponse struct {
	ID             string    `json:"id"`
	RestaurantID   string    `json:"restaurant_id"`
	CreatorID      string    `json:"creator_id"`
	Name           string    `json:"name"`
	OpenMembership bool      `json:"open_membership"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func toGroupResponse(g *groupdomain.Group) groupResponse {
	return groupResponse{
		ID:             g.ID,
		RestaurantID:   g.RestaurantID,
		CreatorID:      g.CreatorID,
		Name:           g.Name,
		OpenMembership: g.OpenMembership,
		Status:         string(g.Status),
		CreatedAt:      g.CreatedAt,
	}
}

type memberResponse struct {
	ID         string    `json:"id"`
	GroupID    string    `json:"group_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	JoinedAt   time.Time `json:"joined_at"`
}

func toMemberResponse(m *memberdomain.Member) memberResponse {
	return memberResponse{
		ID:         m.ID,
		GroupID:    m.GroupID,
		CustomerID: m.CustomerID,
		Status:     string(m.Status),
		JoinedAt:   m.CreatedAt,
	}
}

func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.RestaurantID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "restaurant_id is required")
		return
	}

	result, err := h.Groups.CreateGroup(r.Context(), groupdomain.CreateGroupInput{
		CreatorID:      customerID,
		RestaurantID:   req.RestaurantID,
		Name:           req.Name,
		OpenMembership: req.OpenMembership,
		InviteeIDs:     req.InviteeIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, groupdomain.ErrInvalidName):
			h.log.BusinessError("groups.create: invalid name", err, "customer_id", customerID)
			writeError(w, http.StatusBadRequest, "invalid_name", groupdomain.ErrInvalidName.Error())
		case errors.Is(err, groupdomain.ErrRestaurantNotFound):
			h.log.BusinessError("groups.create: restaurant not found", err, "restaurant_id", req.RestaurantID)
			writeError(w, http.StatusNotFound, "restaurant_not_found", "restaurant not found")
		case isCustomerNotFound(err):
			h.log.BusinessError("groups.create: invitee not found", err, "customer_id", customerID)
			writeError(w, http.StatusNotFound, "invitee_not_found", "invitee not found")
		case errors.Is(err, memberdomain.ErrAlreadyInActiveGroup):
			h.log.BusinessError("groups.create: membership conflict", err, "customer_id", customerID)
			writeError(w, http.StatusConflict, "already_in_active_group", memberdomain.ErrAlreadyInActiveGroup.Error())
		default:
			h.log.InternalError("groups.create: create group failed", err, "customer_id", customerID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toGroupResponse(result))
}

func (h *Handlers) OpenJoinGroup(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	groupID := chi.URLParam(r, "group_id")

	result, err := h.Groups.OpenJoin(r.Context(), groupID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, groupdomain.ErrGroupNotFound):
			h.log.BusinessError("groups.join: group not found", err, "group_id", groupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
		case errors.Is(err, groupdomain.ErrAlreadyMember):
			h.log.BusinessError("groups.join: already member", err, "group_id", groupID, "customer_id", customerID)
			writeError(w, http.StatusConflict, "already_member", groupdomain.ErrAlreadyMember.Error())
		case errors.Is(err, memberdomain.ErrAlreadyInActiveGroup):
			h.log.BusinessError("groups.join: membership conflict", err, "customer_id", customerID)
			writeError(w, http.StatusConflict, "already_in_active_group", memberdomain.ErrAlreadyInActiveGroup.Error())
		default:
			h.log.InternalError("groups.join: join failed", err, "group_id", groupID, "customer_id", customerID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(result))
}

func (h *Handlers) GetGroup(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	groupID := chi.URLParam(r, "group_id")

	result, err := h.Groups.Get(r.Context(), groupID, customerID)
	if err != nil {
		if errors.Is(err, groupdomain.ErrGroupNotFound) {
			h.log.BusinessError("groups.get: group not found", err, "group_id", groupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("groups.get: get failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(result))
}

func (h *Handlers) ListMyGroups(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	groups, err := h.Groups.ListByCustomer(r.Context(), customerID)
	if err != nil {
		h.log.InternalError("groups.list: list failed", err, "customer_id", customerID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]groupResponse, 0, len(groups))
	for i := range groups {
		items = append(items, toGroupResponse(&groups[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handlers) ListGroupMembers(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	groupID := chi.URLParam(r, "group_id")

	members, err := h.Members.ListByGroup(r.Context(), groupID, customerID)
	if err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			h.log.BusinessError("groups.members: not a member", err, "group_id", groupID, "customer_id", customerID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
			return
		}
		h.log.InternalError("groups.members: list failed", err, "group_id", groupID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]memberResponse, 0, len(members))
	for i := range members {
		items = append(items, toMemberResponse(&members[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handlers) ExitGroup(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	groupID := chi.URLParam(r, "group_id")

	err := h.Members.Exit(r.Context(), groupID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			h.log.BusinessError("groups.exit: member not found", err, "group_id", groupID, "customer_id", customerID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, memberdomain.ErrGroupAlreadyFinalized):
			h.log.BusinessError("groups.exit: group already finalized", err, "group_id", groupID)
			writeError(w, http.StatusBadRequest, "group_finalized", memberdomain.ErrGroupAlreadyFinalized.Error())
		case errors.Is(err, memberdomain.ErrInvalidTransition):
			h.log.BusinessError("groups.exit: invalid transition", err, "group_id", groupID, "customer_id", customerID)
			writeError(w, http.StatusBadRequest, "invalid_transition", memberdomain.ErrInvalidTransition.Error())
		default:
			h.log.InternalError("groups.exit: exit failed", err, "group_id", groupID, "customer_id", customerID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "exited"})
}

func (h *Handlers) ExpelGroupMember(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	groupID := chi.URLParam(r, "group_id")
	memberID := chi.URLParam(r, "member_id")

	err := h.Members.Expel(r.Context(), groupID, customerID, memberID)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrGroupNotFound):
			h.log.BusinessError("groups.expel: group not found", err, "group_id", groupID)
			writeError(w, http.StatusNotFound, "group_not_found", "group not found")
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			h.log.BusinessError("groups.expel: member not found", err, "group_id", groupID, "member_id", memberID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, memberdomain.ErrNotGroupAdmin):
			h.log.BusinessError("groups.expel: not admin", err, "group_id", groupID, "customer_id", customerID)
			writeError(w, http.StatusUnauthorized, "not_group_admin", memberdomain.ErrNotGroupAdmin.Error())
		case errors.Is(err, memberdomain.ErrGroupNotOrdering):
			h.log.BusinessError("groups.expel: group not ordering", err, "group_id", groupID)
			writeError(w, http.StatusBadRequest, "group_not_ordering", memberdomain.ErrGroupNotOrdering.Error())
		case errors.Is(err, memberdomain.ErrCannotExpelAdmin):
			h.log.BusinessError("groups.expel: cannot expel admin", err, "group_id", groupID)
			writeError(w, http.StatusBadRequest, "cannot_expel_admin", memberdomain.ErrCannotExpelAdmin.Error())
		case errors.Is(err, memberdomain.ErrInvalidTransition):
			h.log.BusinessError("groups.expel: invalid transition", err, "group_id", groupID, "member_id", memberID)
			writeError(w, http.StatusBadRequest, "invalid_transition", memberdomain.ErrInvalidTransition.Error())
		default:
			h.log.InternalError("groups.expel: expel failed", err, "group_id", groupID, "member_id", memberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "expelled"})
}
