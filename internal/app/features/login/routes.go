package login

import "github.com/go-chi/chi/v5"

// Routes serves POST at the mount root. Throttling happens inside
// HandleLogin so the limiter can key on the submitted login id.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogin)
	return r
}
