package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"kinship-app-go/internal/config"
	"kinship-app-go/internal/transport/httpserver/handler"
	authmw "kinship-app-go/internal/transport/httpserver/middleware"
	"kinship-app-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.JWTAuth, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Get("/members/{code}", handlers.GetMember)
			r.Patch("/members/{code}/active", handlers.SetMemberActive)

			r.Get("/members/{code}/parents", handlers.GetMemberParents)
			r.Get("/members/{code}/ancestors", handlers.GetMemberAncestors)
			r.Get("/members/{code}/descendants", handlers.GetMemberDescendants)
			r.Delete("/members/{code}/parents/{role}", handlers.RemoveEdge)

			r.Get("/family/tree", handlers.GetMyTree)
			r.Put("/family/tree/heads", handlers.SetFamilyHeads)

			r.Post("/confirmations", handlers.CreateConfirmation)
			r.Get("/confirmations/pending", handlers.ListPendingConfirmations)
			r.Post("/confirmations/{id}/confirm", handlers.ConfirmRequest)
			r.Post("/confirmations/{id}/reject", handlers.RejectRequest)
		})
	})

	return r
}
