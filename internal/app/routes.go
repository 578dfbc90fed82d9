package app

import (
	"github.com/dvnc0/gimli/mux"
)

// Middleware names registered in the Container.
const (
	MiddlewareAuth  = "auth"
	MiddlewareAudit = "audit"
)

// Routes registers the application routes and commands on b.
func Routes(b *mux.Builder) {
	b.Get("/", mux.MustParseHandler("HomeController@Index"))
	b.Get("/login", mux.MustParseHandler("LoginController@Show"))

	b.Group("/api", func(b *mux.Builder) {
		b.Group("/v1", func(b *mux.Builder) {
			b.Get("/posts", mux.MustParseHandler("PostController@Index"))
			b.Get("/posts/:integer#id", mux.MustParseHandler("PostController@Show")).
				ParamType("id", "int")
			b.Get("/posts/:slug#slug", mux.MustParseHandler("PostController@BySlug")).
				ParamType("slug", "slug")
			b.Delete("/posts/:integer#id", mux.MustParseHandler("PostController@Delete")).
				ParamType("id", "int").
				AddMiddleware(MiddlewareAudit)
		})
	}, MiddlewareAuth)

	b.CLI("deploy", mux.Command("DeployCommand"))
	b.Group("posts-", func(b *mux.Builder) {
		b.CLI("list", mux.Command("ListPostsCommand"))
	})
}
