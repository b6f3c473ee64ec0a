package health

import "github.com/go-chi/chi/v5"

// Routes serves the check at the mount root for GET and HEAD.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	r.Head("/", h.Serve)
	return r
}
