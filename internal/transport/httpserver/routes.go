package httpserver

import (
	"net/http"
	"time"

	"botram-go/internal/transport/httpserver/handler"
	authmw "botram-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handlers *handler.Handlers, auth *authmw.JWTAuth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS([]string{"http://localhost:5173"}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/customers/me", handlers.CustomerMe)

			r.Post("/groups", handlers.CreateGroup)
			r.Get("/groups", handlers.ListMyGroups)
			r.Get("/groups/{group_id}", handlers.GetGroup)
			r.Post("/groups/{group_id}/join", handlers.OpenJoinGroup)
			r.Post("/groups/{group_id}/exit", handlers.ExitGroup)
			r.Get("/groups/{group_id}/members", handlers.ListGroupMembers)
			r.Delete("/groups/{group_id}/members/{member_id}", handlers.ExpelGroupMember)

			r.Get("/invitations", handlers.ListPendingInvitations)
			r.Post("/invitations/{invitation_id}/accept", handlers.AcceptInvitation)
			r.Post("/invitations/{invitation_id}/reject", handlers.RejectInvitation)

			r.Get("/groups/{group_id}/cart", handlers.ListCart)
			r.Post("/groups/{group_id}/cart", handlers.AddCartItem)
			r.Patch("/cart/{line_id}", handlers.UpdateCartLine)
			r.Delete("/cart/{line_id}", handlers.RemoveCartLine)
			r.Post("/cart/bulk-delete", handlers.BulkRemoveCartLines)

			r.Post("/groups/{group_id}/finalize", handlers.FinalizeGroup)
			r.Get("/groups/{group_id}/orders", handlers.ListGroupOrders)
			r.Get("/groups/{group_id}/group-order", handlers.GetGroupOrder)
		})
	})

	return r
}
