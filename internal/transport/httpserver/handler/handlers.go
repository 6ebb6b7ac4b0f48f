package handler

import (
	"net/http"

	cartdomain "botram-go/internal/domain/cart"
	customerdomain "botram-go/internal/domain/customer"
	groupdomain "botram-go/internal/domain/group"
	invitationdomain "botram-go/internal/domain/invitation"
	memberdomain "botram-go/internal/domain/member"
	orderdomain "botram-go/internal/domain/order"
	"botram-go/pkg/logger"
)

type Handlers struct {
	Customers   *customerdomain.Service
	Groups      *groupdomain.Service
	Members     *memberdomain.Service
	Invitations *invitationdomain.Service
	Carts       *cartdomain.Service
	Orders      *orderdomain.Service

	log logger.Logger
}

func New(
	customers *customerdomain.Service,
	groups *groupdomain.Service,
	members *memberdomain.Service,
	invitations *invitationdomain.Service,
	carts *cartdomain.Service,
	orders *orderdomain.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Customers:   customers,
		Groups:      groups,
		Members:     members,
		Invitations: invitations,
		Carts:       carts,
		Orders:      orders,
		log:         log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
