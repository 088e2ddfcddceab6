package handler

import (
	"net/http"

	"church-app-go/internal/transport/httpserver/middleware"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Stats(r.Context(), middleware.IdentityFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, "dashboard.view", err, middleware.LoginPath)
		return
	}
	h.render(w, r, http.StatusOK, "main/dashboard.html", "Dashboard", stats)
}

func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "main/about.html", "About", h.cfg.App)
}
