package routes

import (
	"journal-transporter/transporter/internal/api"
	"journal-transporter/transporter/internal/middleware"
	"journal-transporter/transporter/internal/nested"

	"github.com/go-chi/chi/v5"
)

// APIPrefix is where every import resource is mounted.
const APIPrefix = "/api/v1"

// RegisterAPIRoutes registers the nested import resources. Every route
// requires an API key or a bearer token.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, limiter *middleware.RateLimiter) {
	set := deps.Services.Importers

	r.Route(APIPrefix, func(v1 chi.Router) {
		v1.Use(middleware.AuthMiddleware(deps.Repo.Keys, []byte(deps.Config.Secret), deps.Services.Metrics))
		v1.Use(limiter.Middleware)

		v1.Get("/plugin", api.PluginInfoHandler(deps.Install))

		router := nested.NewRouter(v1, api.MethodNotAllowed)

		router.Register("users", api.NewResourceHandler(set.Users))

		journals := router.Register("journals", api.NewResourceHandler(set.Journals))
		journals.Register("issues", "journal_id", api.NewResourceHandler(set.Issues))
		journals.Register("sections", "journal_id", api.NewResourceHandler(set.Sections))
		journals.Register("roles", "journal_id", api.NewResourceHandler(set.Roles))

		forms := journals.Register("review_forms", "journal_id", api.NewResourceHandler(set.ReviewForms))
		forms.Register("elements", "review_form_id", api.NewResourceHandler(set.FormElements))

		articles := journals.Register("articles", "journal_id", api.NewResourceHandler(set.Articles))
		articles.Register("editors", "article_id", api.NewResourceHandler(set.Editors))
		articles.Register("authors", "article_id", api.NewResourceHandler(set.Authors))
		articles.Register("revision_requests", "article_id", api.NewResourceHandler(set.RevisionRequests))
		articles.Register("log_entries", "article_id", api.NewResourceHandler(set.LogEntries))

		files := articles.Register("files", "article_id", api.NewResourceHandler(set.Files))
		v1.Get(files.ItemPattern()+"/download", api.FileContentHandler(set.Files, deps.Services.Files))

		rounds := articles.Register("rounds", "article_id", api.NewResourceHandler(set.Rounds))
		assignments := rounds.Register("assignments", "round_id", api.NewResourceHandler(set.Assignments))
		assignments.Register("response", "assignment_id", api.NewResourceHandler(set.Answers))
	})
}
