package logout

import "github.com/go-chi/chi/v5"

// Routes serves POST at the mount root. The route stays outside
// RequireSignedIn so a stale cookie can always be cleared.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogout)
	return r
}
