package server

import (
	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func SetupRoutes(svc *ClaimService) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/claims", svc.ListClaims)
		r.Post("/claims", svc.SubmitClaim)
		r.Post("/claims/import", svc.ImportClaims)
		r.Get("/claims/{id}", svc.GetClaim)
		r.Get("/stats", svc.GetStats)
		r.Get("/policies/{id}", svc.GetPolicy)
	})

	return r
}
