package handler

import (
	"errors"
	"net/http"
	"strings"

	settingdomain "church-app-go/internal/domain/setting"
	userdomain "church-app-go/internal/domain/user"
	"church-app-go/internal/transport/httpserver/flash"
	"church-app-go/internal/transport/httpserver/middleware"
)

type themeRequest struct {
	Theme *string `json:"theme"`
}

type themeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type accountView struct {
	Username string
}

func (h *Handlers) AppearancePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "settings/appearance.html", "Appearance", nil)
}

// SetTheme stores the caller's theme. A body without a theme selects light.
func (h *Handlers) SetTheme(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	var req themeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("settings.theme: invalid body", err, "user_id", identity.UserID)
		writeJSON(w, http.StatusBadRequest, themeResponse{Message: "Invalid request body"})
		return
	}
	theme := string(userdomain.ThemeLight)
	if req.Theme != nil {
		theme = *req.Theme
	}

	if err := h.Users.SetTheme(r.Context(), identity, theme); err != nil {
		if errors.Is(err, userdomain.ErrInvalidTheme) {
			h.log.BusinessError("settings.theme: invalid theme", err, "user_id", identity.UserID, "theme", theme)
			writeJSON(w, http.StatusBadRequest, themeResponse{Message: "Invalid theme"})
			return
		}
		h.log.InternalError("settings.theme: failed to save", err, "user_id", identity.UserID)
		writeJSON(w, http.StatusInternalServerError, themeResponse{Message: "Could not save theme"})
		return
	}

	writeJSON(w, http.StatusOK, themeResponse{Success: true, Message: "Theme updated"})
}

func (h *Handlers) AccountPage(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	h.render(w, r, http.StatusOK, "settings/account.html", "Account", accountView{Username: user.Username})
}

func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, "settings.account", err, "/settings/account")
		return
	}

	input := userdomain.AccountInput{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	user, err := h.Users.UpdateAccount(r.Context(), identity, input)
	if err != nil {
		if messages, ok := formMessages(err); ok {
			h.log.BusinessError("settings.account: invalid input", err, "user_id", identity.UserID)
			h.render(w, r, http.StatusUnprocessableEntity, "settings/account.html", "Account",
				accountView{Username: strings.TrimSpace(input.Username)}, messages...)
			return
		}
		h.fail(w, r, "settings.account", err, "/dashboard")
		return
	}

	h.log.Info("settings.account: account updated", "user_id", user.ID)
	flash.Add(w, r, flash.Success, "Account updated successfully!")
	redirect(w, r, "/settings/account")
}

func (h *Handlers) ChurchPage(w http.ResponseWriter, r *http.Request) {
	church, err := h.Settings.Church(r.Context())
	if err != nil {
		h.fail(w, r, "settings.church", err, "/dashboard")
		return
	}
	h.render(w, r, http.StatusOK, "settings/church.html", "Church Settings", church)
}

func (h *Handlers) UpdateChurch(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, "settings.church", err, "/dashboard")
		return
	}

	input := settingdomain.ChurchInput{
		Name:    r.PostForm.Get("church_name"),
		Address: r.PostForm.Get("church_address"),
		Contact: r.PostForm.Get("church_contact"),
	}
	if _, err := h.Settings.UpdateChurch(r.Context(), identity, input); err != nil {
		if messages, ok := formMessages(err); ok {
			h.log.BusinessError("settings.church: invalid input", err, "user_id", identity.UserID)
			h.render(w, r, http.StatusUnprocessableEntity, "settings/church.html", "Church Settings",
				settingdomain.Church(input), messages...)
			return
		}
		h.fail(w, r, "settings.church", err, "/dashboard")
		return
	}

	h.log.Info("settings.church: church settings updated", "user_id", identity.UserID)
	flash.Add(w, r, flash.Success, "Church settings updated successfully!")
	redirect(w, r, "/settings/church")
}
