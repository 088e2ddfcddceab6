package handler

import (
	"errors"
	"net/http"
	"strings"

	userdomain "church-app-go/internal/domain/user"
	"church-app-go/internal/transport/httpserver/flash"
	"church-app-go/internal/transport/httpserver/middleware"
)

type loginView struct {
	Username string
	Next     string
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); ok {
		redirect(w, r, "/dashboard")
		return
	}
	redirect(w, r, middleware.LoginPath)
}

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); ok {
		redirect(w, r, "/dashboard")
		return
	}
	h.render(w, r, http.StatusOK, "auth/login.html", "Login", loginView{Next: r.URL.Query().Get("next")})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); ok {
		redirect(w, r, "/dashboard")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, "auth.login", err)
		return
	}

	username := strings.TrimSpace(r.PostForm.Get("username"))
	next := r.PostForm.Get("next")
	if next == "" {
		next = r.URL.Query().Get("next")
	}
	page := loginView{Username: username, Next: next}

	user, err := h.Users.Authenticate(r.Context(), username, r.PostForm.Get("password"))
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrInvalidCredentials):
			h.log.BusinessError("auth.login: invalid credentials", err, "username", username)
			h.render(w, r, http.StatusUnauthorized, "auth/login.html", "Login", page,
				flash.Message{Category: flash.Danger, Text: "Invalid username or password."})
		case errors.Is(err, userdomain.ErrAccountDisabled):
			h.log.BusinessError("auth.login: account disabled", err, "username", username)
			h.render(w, r, http.StatusForbidden, "auth/login.html", "Login", page,
				flash.Message{Category: flash.Danger, Text: "Your account has been deactivated. Please contact an administrator."})
		default:
			h.fail(w, r, "auth.login", err, middleware.LoginPath)
		}
		return
	}

	if err := h.sessions.Start(w, user.ID, checked(r.PostForm.Get("remember"))); err != nil {
		h.fail(w, r, "auth.login", err, middleware.LoginPath)
		return
	}

	h.log.Info("auth.login: user logged in", "user_id", user.ID, "role", user.Role)
	flash.Add(w, r, flash.Success, "Welcome back, "+user.Username+"!")
	redirect(w, r, middleware.SafeNext(next, "/dashboard"))
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		h.log.Info("auth.logout: user logged out", "user_id", user.ID)
	}
	h.sessions.End(w, r)
	flash.Add(w, r, flash.Info, "You have been logged out.")
	redirect(w, r, middleware.LoginPath)
}
