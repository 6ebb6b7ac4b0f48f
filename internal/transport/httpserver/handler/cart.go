package handler

import (
	"errors"
	"net/http"

	cartdomain "botram-go/internal/domain/cart"
	catalogdomain "botram-go/internal/domain/catalog"
	memberdomain "botram-go/internal/domain/member"
	"botram-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type addCartItemRequest struct {
	MenuItemID   string `json:"menu_item_id"`
	CustomMenuID string `json:"custom_menu_id"`
	Quantity     int    `json:"quantity"`
	Wrapped      bool   `json:"wrapped"`
	SpiceLevel   *int   `json:"spice_level"`
}

type updateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

type bulkRemoveRequest struct {
	LineIDs []string `json:"line_ids"`
}

type cartMutationResponse struct {
	ID                   string `json:"id"`
	GroupID              string `json:"group_id"`
	MemberID             string `json:"member_id"`
	ItemName             string `json:"item_name"`
	UnitPrice            int64  `json:"unit_price"`
	Quantity             int    `json:"quantity"`
	Wrapped              bool   `json:"wrapped"`
	SpiceLevel           *int   `json:"spice_level,omitempty"`
	IsAvailableToAddMore bool   `json:"is_available_to_add_more"`
}

func toCartMutationResponse(res *cartdomain.MutationResult) cartMutationResponse {
	return cartMutationResponse{
		ID:                   res.Line.ID,
		GroupID:              res.Line.GroupID,
		MemberID:             res.Line.MemberID,
		ItemName:             res.ItemName,
		UnitPrice:            res.UnitPrice,
		Quantity:             res.Line.Quantity,
		Wrapped:              res.Line.Wrapped,
		SpiceLevel:           res.Line.SpiceLevel,
		IsAvailableToAddMore: res.IsAvailableToAddMore,
	}
}

func (h *Handlers) writeCartError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, cartdomain.ErrInvalidQuantity):
		h.log.BusinessError(op+": invalid quantity", err)
		writeError(w, http.StatusBadRequest, "invalid_quantity", cartdomain.ErrInvalidQuantity.Error())
	case errors.Is(err, cartdomain.ErrInvalidItemRef):
		h.log.BusinessError(op+": invalid item reference", err)
		writeError(w, http.StatusBadRequest, "invalid_item_ref", cartdomain.ErrInvalidItemRef.Error())
	case errors.Is(err, cartdomain.ErrMemberNotOrdering):
		h.log.BusinessError(op+": member not ordering", err)
		writeError(w, http.StatusBadRequest, "member_not_ordering", cartdomain.ErrMemberNotOrdering.Error())
	case errors.Is(err, cartdomain.ErrLineNotFound):
		h.log.BusinessError(op+": line not found", err)
		writeError(w, http.StatusNotFound, "line_not_found", "cart line not found")
	case errors.Is(err, memberdomain.ErrMemberNotFound):
		h.log.BusinessError(op+": member not found", err)
		writeError(w, http.StatusNotFound, "member_not_found", "member not found")
	case errors.Is(err, catalogdomain.ErrItemNotFound):
		h.log.BusinessError(op+": item not found", err)
		writeError(w, http.StatusNotFound, "item_not_found", "catalog item not found")
	case errors.Is(err, catalogdomain.ErrOutOfStock):
		h.log.BusinessError(op+": out of stock", err)
		writeError(w, http.StatusBadRequest, "out_of_stock", catalogdomain.ErrOutOfStock.Error())
	default:
		h.log.InternalError(op+": failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func (h *Handlers) AddCartItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	groupID := chi.URLParam(r, "group_id")

	var req addCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Carts.AddItem(r.Context(), groupID, customerID, cartdomain.ItemRef{
		MenuItemID:   req.MenuItemID,
		CustomMenuID: req.CustomMenuID,
	}, req.Quantity, req.Wrapped, req.SpiceLevel)
	if err != nil {
		h.writeCartError(w, err, "cart.add")
		return
	}

	writeJSON(w, http.StatusCreated, toCartMutationResponse(result))
}

func (h *Handlers) UpdateCartLine(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	lineID := chi.URLParam(r, "line_id")

	var req updateCartLineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Carts.UpdateQuantity(r.Context(), lineID, customerID, req.Quantity)
	if err != nil {
		h.writeCartError(w, err, "cart.update")
		return
	}

	writeJSON(w, http.StatusOK, toCartMutationResponse(result))
}

func (h *Handlers) RemoveCartLine(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	lineID := chi.URLParam(r, "line_id")

	if err := h.Carts.RemoveItem(r.Context(), lineID, customerID); err != nil {
		h.writeCartError(w, err, "cart.remove")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handlers) BulkRemoveCartLines(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req bulkRemoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	removed, err := h.Carts.BulkRemove(r.Context(), req.LineIDs, customerID)
	if err != nil {
		h.writeCartError(w, err, "cart.bulk_remove")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

func (h *Handlers) ListCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	groupID := chi.URLParam(r, "group_id")

	views, err := h.Carts.ListByGroup(r.Context(), groupID, customerID)
	if err != nil {
		h.writeCartError(w, err, "cart.list")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"items": views})
}
