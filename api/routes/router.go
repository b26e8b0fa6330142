package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/promptdeck/promptdeck-backend/api/controllers"
	"github.com/promptdeck/promptdeck-backend/api/middleware"
	"github.com/promptdeck/promptdeck-backend/internal/auth"
	"github.com/promptdeck/promptdeck-backend/internal/prompts"
	"github.com/promptdeck/promptdeck-backend/internal/teams"
	"github.com/promptdeck/promptdeck-backend/pkg/auth/session"
	"github.com/promptdeck/promptdeck-backend/pkg/config"
	"github.com/promptdeck/promptdeck-backend/pkg/logger"
	"github.com/promptdeck/promptdeck-backend/pkg/metrics"
)

// RouterParams collects everything the HTTP surface depends on.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	SessionChecker  session.AccessSessionChecker
	HTTPMetrics     *metrics.HTTPMetrics
	AuthService     auth.Service
	RegisterService auth.RegisterService
	TeamsService    teams.Service
	PromptsService  prompts.Service
}

// NewRouter assembles the chi router with the full middleware chain and
// every versioned API route.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(),
	)
	if p.HTTPMetrics != nil {
		r.Use(p.HTTPMetrics.Middleware())
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(p.AuthService, p.Logger))
		r.Post("/register", controllers.AuthRegister(p.RegisterService, p.AuthService, p.Logger))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, p.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(p.Config.JWT, p.SessionChecker, p.Logger))
			r.Post("/logout", controllers.AuthLogout(p.AuthService, p.Config.JWT, p.Logger))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(p.Config.JWT, p.SessionChecker, p.Logger))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/teams", func(r chi.Router) {
			r.Get("/", controllers.TeamList(p.TeamsService, p.Logger))
			r.Post("/", controllers.TeamCreate(p.TeamsService, p.Logger))

			r.Route("/{teamID}", func(r chi.Router) {
				r.Get("/", controllers.TeamGet(p.TeamsService, p.Logger))
				r.Patch("/", controllers.TeamUpdate(p.TeamsService, p.Logger))
				r.Delete("/", controllers.TeamDelete(p.TeamsService, p.Logger))
				r.Post("/transfer", controllers.OwnershipTransfer(p.TeamsService, p.Logger))
				r.Post("/invite/accept", controllers.InviteAccept(p.TeamsService, p.Logger))

				r.Route("/members", func(r chi.Router) {
					r.Get("/", controllers.MemberList(p.TeamsService, p.Logger))
					r.Post("/", controllers.MemberInvite(p.TeamsService, p.Logger))
					r.Patch("/{userID}", controllers.MemberUpdate(p.TeamsService, p.Logger))
					r.Delete("/{userID}", controllers.MemberRemove(p.TeamsService, p.Logger))
				})

				r.Route("/prompts", func(r chi.Router) {
					r.Get("/", controllers.PromptList(p.PromptsService, p.Logger))
					r.Post("/", controllers.PromptCreate(p.PromptsService, p.Logger))
					r.Get("/{promptID}", controllers.PromptGet(p.PromptsService, p.Logger))
					r.Patch("/{promptID}", controllers.PromptUpdate(p.PromptsService, p.Logger))
					r.Delete("/{promptID}", controllers.PromptDelete(p.PromptsService, p.Logger))
				})
			})
		})
	})

	return r
}
