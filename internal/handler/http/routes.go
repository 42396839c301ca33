package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withMetrics, h.withLogging, middleware.Recoverer, withGZip)

	router.Handle("/metrics", h.metrics.handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/version/", h.getServerVersion)
		r.Get("/version/build", h.getBuildInfo)

		// routes without authorization
		r.Route("/auth", func(r chi.Router) {
			r.Get("/clients/{clientID}", h.getClient)
			r.Post("/register", h.register)
			r.Post("/token", h.token)
		})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/snapshot", h.getSnapshot)
			r.Put("/snapshot", h.putSnapshot)
		})
	})

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
