package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleEntryPoint)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/dispatch/requests", func(r chi.Router) {
			r.Get("/", s.handleListRequests)
			r.Post("/", s.handleCreateRequest)
			r.Get("/{id}", s.handleGetRequest)
			r.Put("/{id}", s.handleUpdateSender)
			r.Delete("/{id}", s.handleDeleteRequest)
			r.Post("/{id}/submit", s.handleSubmitRequest)
		})

		r.Route("/dispatch/request-recipients", func(r chi.Router) {
			r.Post("/", s.handleCreateRecipient)
			r.Put("/{id}", s.handleUpdateRecipient)
			r.Delete("/{id}", s.handleDeleteRecipient)
		})

		r.Route("/dispatch/request-files", func(r chi.Router) {
			r.Post("/", s.handleCreateFile)
			r.Get("/{id}", s.handleGetFile)
			r.Delete("/{id}", s.handleDeleteFile)
		})

		r.Get("/base/organizations/{id}", s.handleGetOrganization)
	})

	return r
}
