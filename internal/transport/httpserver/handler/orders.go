package handler

import (
	"errors"
	"net/http"
	"time"

	catalogdomain "botram-go/internal/domain/catalog"
	groupdomain "botram-go/internal/domain/group"
	memberdomain "botram-go/internal/domain/member"
	orderdomain "botram-go/internal/domain/order"
	"botram-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type groupOrderResponse struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"group_id"`
	RestaurantID string    `json:"restaurant_id"`
	TotalAmount  int64     `json:"total_amount"`
	Status       string    `json:"status"`
	IsPaid       bool      `json:"is_paid"`
	CreatedAt    time.Time `json:"created_at"`
}

func toGroupOrderResponse(g *orderdomain.GroupOrder) groupOrderResponse {
	return groupOrderResponse{
		ID:           g.ID,
		GroupID:      g.GroupID,
		RestaurantID: g.RestaurantID,
		TotalAmount:  g.TotalAmount,
		Status:       string(g.Status),
		IsPaid:       g.IsPaid,
		CreatedAt:    g.CreatedAt,
	}
}

func (h *Handlers) FinalizeGroup(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	groupID := chi.URLParam(r, "group_id")

	aggregate, err := h.Orders.Finalize(r.Context(), groupID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, groupdomain.ErrGroupNotFound):
			h.log.BusinessError("order.finalize: group not found", err)
			writeError(w, http.StatusNotFound, "group_not_found", "botram group not found")
		case errors.Is(err, memberdomain.ErrNotGroupAdmin):
			h.log.BusinessError("order.finalize: not group admin", err)
			writeError(w, http.StatusUnauthorized, "not_group_admin", memberdomain.ErrNotGroupAdmin.Error())
		case errors.Is(err, memberdomain.ErrGroupNotOrdering):
			h.log.BusinessError("order.finalize: group not ordering", err)
			writeError(w, http.StatusConflict, "group_not_ordering", memberdomain.ErrGroupNotOrdering.Error())
		case errors.Is(err, orderdomain.ErrNothingToFinalize):
			h.log.BusinessError("order.finalize: nothing to finalize", err)
			writeError(w, http.StatusBadRequest, "nothing_to_finalize", orderdomain.ErrNothingToFinalize.Error())
		case errors.Is(err, catalogdomain.ErrOutOfStock):
			h.log.BusinessError("order.finalize: out of stock", err)
			writeError(w, http.StatusConflict, "out_of_stock", catalogdomain.ErrOutOfStock.Error())
		case errors.Is(err, memberdomain.ErrStatusConflict), errors.Is(err, groupdomain.ErrStatusConflict):
			h.log.BusinessError("order.finalize: concurrent update", err)
			writeError(w, http.StatusConflict, "status_conflict", "group was modified concurrently, retry")
		default:
			h.log.InternalError("order.finalize: failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toGroupOrderResponse(aggregate))
}

func (h *Handlers) ListGroupOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	groupID := chi.URLParam(r, "group_id")

	rows, err := h.Orders.ListGroupOrders(r.Context(), groupID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, groupdomain.ErrGroupNotFound):
			h.log.BusinessError("order.list: group not found", err)
			writeError(w, http.StatusNotFound, "group_not_found", "botram group not found")
		default:
			h.log.InternalError("order.list: failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"members": rows})
}

func (h *Handlers) GetGroupOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	groupID := chi.URLParam(r, "group_id")

	aggregate, err := h.Orders.GetGroupOrder(r.Context(), groupID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, groupdomain.ErrGroupNotFound):
			h.log.BusinessError("order.get: group not found", err)
			writeError(w, http.StatusNotFound, "group_not_found", "botram group not found")
		case errors.Is(err, orderdomain.ErrGroupOrderNotFound):
			h.log.BusinessError("order.get: group order not found", err)
			writeError(w, http.StatusNotFound, "group_order_not_found", "group has not been finalized")
		default:
			h.log.InternalError("order.get: failed", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toGroupOrderResponse(aggregate))
}
