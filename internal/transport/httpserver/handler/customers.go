package handler

import (
	"errors"
	"net/http"

	customerdomain "botram-go/internal/domain/customer"
	"botram-go/internal/transport/httpserver/middleware"
)

type customerResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	JoinPreference string `json:"join_preference"`
}

func isCustomerNotFound(err error) bool {
	return errors.Is(err, customerdomain.ErrCustomerNotFound)
}

func (h *Handlers) CustomerMe(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	c, err := h.Customers.Get(r.Context(), customerID)
	if err != nil {
		if isCustomerNotFound(err) {
			h.log.BusinessError("customers.me: customer not found", err, "customer_id", customerID)
			writeError(w, http.StatusNotFound, "customer_not_found", "customer not found")
			return
		}
		h.log.InternalError("customers.me: get failed", err, "customer_id", customerID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, customerResponse{
		ID:             c.ID,
		Name:           c.Name,
		JoinPreference: string(c.JoinPreference),
	})
}
