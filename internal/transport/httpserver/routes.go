package httpserver

import (
	"io/fs"
	"net/http"
	"time"

	"church-app-go/internal/config"
	"church-app-go/internal/domain/policy"
	"church-app-go/internal/transport/httpserver/handler"
	appmw "church-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Handlers *handler.Handlers
	Sessions *appmw.Sessions
	Metrics  *appmw.Metrics
	Gatherer prometheus.Gatherer
	Static   fs.FS
}

func NewRouter(cfg config.Config, deps RouterDeps) http.Handler {
	h := deps.Handlers

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(appmw.SecurityHeaders)
	r.Use(appmw.NewCORS(cfg.CORSOrigins))
	r.Use(deps.Metrics.Handler)
	r.Use(appmw.LimitBody(cfg.MaxUploadSize))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(deps.Static))))

	r.Group(func(r chi.Router) {
		r.Use(deps.Sessions.Load)

		r.Get("/", h.Index)
		r.Get("/about", h.About)

		r.Route("/auth", func(r chi.Router) {
			r.Get("/login", h.LoginPage)
			r.Post("/login", h.Login)
			r.Get("/logout", h.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(deps.Sessions.RequireLogin)

			r.Get("/dashboard", h.Dashboard)

			r.Route("/members", func(r chi.Router) {
				r.Get("/", h.ListMembers)
				r.Get("/add", h.AddMemberPage)
				r.Post("/add", h.AddMember)
				r.Get("/{id}", h.ViewMember)
				r.Get("/{id}/edit", h.EditMemberPage)
				r.Post("/{id}/edit", h.EditMember)
				r.Post("/{id}/deactivate", h.DeactivateMember)
			})

			r.Route("/caregroups", func(r chi.Router) {
				r.Get("/", h.ListCareGroups)
				r.Get("/{id}", h.ViewCareGroup)

				r.Group(func(r chi.Router) {
					r.Use(appmw.RequireAction(policy.ManageCareGroups, "/caregroups"))
					r.Get("/add", h.AddCareGroupPage)
					r.Post("/add", h.AddCareGroup)
					r.Get("/{id}/edit", h.EditCareGroupPage)
					r.Post("/{id}/edit", h.EditCareGroup)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/appearance", h.AppearancePage)
				r.Post("/appearance/theme", h.SetTheme)
				r.Get("/account", h.AccountPage)
				r.Post("/account/update", h.UpdateAccount)

				r.Group(func(r chi.Router) {
					r.Use(appmw.RequireAction(policy.ManageSettings, "/dashboard"))
					r.Get("/church", h.ChurchPage)
					r.Post("/church", h.UpdateChurch)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(appmw.RequireAction(policy.ManageUsers, "/dashboard"))
					r.Get("/users", h.ListUsers)
					r.Get("/users/add", h.AddUserPage)
					r.Post("/users/add", h.AddUser)
					r.Get("/users/{id}/edit", h.EditUserPage)
					r.Post("/users/{id}/edit", h.EditUser)
				})

				r.Group(func(r chi.Router) {
					r.Use(appmw.RequireAction(policy.ManageMinistries, "/dashboard"))
					r.Get("/ministries", h.ListMinistries)
					r.Get("/ministries/add", h.AddMinistryPage)
					r.Post("/ministries/add", h.AddMinistry)
					r.Get("/ministries/{id}/edit", h.EditMinistryPage)
					r.Post("/ministries/{id}/edit", h.EditMinistry)
					r.Post("/ministries/{id}/delete", h.DeleteMinistry)
				})

				r.Group(func(r chi.Router) {
					r.Use(appmw.RequireAction(policy.ManageSettings, "/dashboard"))
					r.Get("/system", h.SystemPage)
					r.Post("/system/update", h.UpdateSystem)
				})
			})
		})

		r.NotFound(h.NotFound)
	})

	return r
}
