// internal/app/features/surveys/routes.go
package surveys

import (
	"github.com/dalemusser/mutuhub/internal/app/system/auth"
	"github.com/dalemusser/mutuhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts survey and question routes (typically at "/surveys").
// Creator checks for non-admins happen inside the handlers.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireCan(authz.ViewSurvey))
		pr.Get("/", h.ServeList)
		pr.Get("/{surveyID}", h.ServeView)
		pr.Get("/{surveyID}/questions", h.ServeQuestions)
	})

	r.With(sm.RequireCan(authz.CreateSurvey)).Post("/", h.HandleCreate)
	r.With(sm.RequireCan(authz.DeleteSurvey)).Delete("/{surveyID}", h.HandleDelete)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireCan(authz.UpdateSurvey))
		pr.Put("/{surveyID}", h.HandleUpdate)
		pr.Post("/{surveyID}/questions", h.HandleCreateQuestion)
		pr.Put("/{surveyID}/questions/{questionID}", h.HandleUpdateQuestion)
		pr.Delete("/{surveyID}/questions/{questionID}", h.HandleDeleteQuestion)
	})

	return r
}

// QuestionRoutes mounts option routes and question reordering (typically
// at "/survey-questions").
func QuestionRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.With(sm.RequireCan(authz.ReorderSurvey)).Post("/{surveyID}/reorder", h.HandleReorderQuestions)
	r.With(sm.RequireCan(authz.ViewSurvey)).Get("/{questionID}/options", h.ServeOptions)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireCan(authz.UpdateSurvey))
		pr.Post("/{questionID}/options", h.HandleCreateOption)
		pr.Put("/{questionID}/options/{optionID}", h.HandleUpdateOption)
		pr.Delete("/{questionID}/options/{optionID}", h.HandleDeleteOption)
	})

	return r
}

// OptionRoutes mounts option reordering (typically at "/survey-options").
func OptionRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.With(sm.RequireCan(authz.ReorderSurvey)).Post("/{questionID}/reorder", h.HandleReorderOptions)
	return r
}
