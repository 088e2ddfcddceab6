package handler

import (
	"net/http"
	"net/url"
	"strconv"

	caregroupdomain "church-app-go/internal/domain/caregroup"
	ministrydomain "church-app-go/internal/domain/ministry"
	"church-app-go/internal/domain/paging"
	settingdomain "church-app-go/internal/domain/setting"
	userdomain "church-app-go/internal/domain/user"
	"church-app-go/internal/transport/httpserver/flash"
	"church-app-go/internal/transport/httpserver/middleware"
)

type usersView struct {
	Page  paging.Page[userdomain.User]
	Rows  []userRow
	Query url.Values
}

type userRow struct {
	User      userdomain.User
	CareGroup string
}

type userFormView struct {
	ID         uint
	Username   string
	Role       string
	Status     string
	CareGroup  *uint
	CareGroups []caregroupdomain.CareGroup
}

type ministriesView struct {
	Ministries []ministrydomain.Ministry
}

type ministryFormView struct {
	ID    uint
	Input ministrydomain.Input
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.Users.List(r.Context(), middleware.IdentityFromContext(r.Context()), h.pageRequest(r))
	if err != nil {
		h.fail(w, r, "admin.users", err, "/dashboard")
		return
	}

	groups, err := h.CareGroups.Options(r.Context())
	if err != nil {
		h.fail(w, r, "admin.users", err, "/dashboard")
		return
	}
	names := make(map[uint]string, len(groups))
	for _, group := range groups {
		names[group.ID] = group.Name
	}
	rows := make([]userRow, 0, len(page.Items))
	for _, user := range page.Items {
		row := userRow{User: user}
		if user.CareGroupID != nil {
			row.CareGroup = names[*user.CareGroupID]
		}
		rows = append(rows, row)
	}

	h.render(w, r, http.StatusOK, "admin/users.html", "Users", usersView{
		Page:  page,
		Rows:  rows,
		Query: url.Values{},
	})
}

func (h *Handlers) AddUserPage(w http.ResponseWriter, r *http.Request) {
	h.renderUserForm(w, r, http.StatusOK, userFormView{Role: "viewer"})
}

func (h *Handlers) AddUser(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, "admin.users.add", err, "/dashboard")
		return
	}

	input := userdomain.CreateInput{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
		Role:     r.PostForm.Get("role"),
	}
	form := userFormView{Username: input.Username, Role: input.Role}

	var err error
	input.CareGroupID, err = optionalID(r.PostForm.Get("caregroup_id"), "care group")
	form.CareGroup = input.CareGroupID
	var user *userdomain.User
	if err == nil {
		user, err = h.Users.Create(r.Context(), identity, input)
	}
	if err != nil {
		if messages, ok := formMessages(err); ok {
			h.log.BusinessError("admin.users.add: invalid input", err, "user_id", identity.UserID)
			h.renderUserForm(w, r, http.StatusUnprocessableEntity, form, messages...)
			return
		}
		h.fail(w, r, "admin.users.add", err, "/dashboard")
		return
	}

	h.log.Info("admin.users.add: user created", "created_id", user.ID, "role", user.Role, "user_id", identity.UserID)
	flash.Add(w, r, flash.Success, "User "+user.Username+" added successfully!")
	redirect(w, r, "/admin/users")
}

func (h *Handlers) EditUserPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	user, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, "admin.users.edit", err, "/dashboard")
		return
	}
	h.renderUserForm(w, r, http.StatusOK, userFormView{
		ID:        user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CareGroup: user.CareGroupID,
	})
}

func (h *Handlers) EditUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, "admin.users.edit", err, "/dashboard")
		return
	}

	input := userdomain.UpdateInput{
		Role:   r.PostForm.Get("role"),
		Status: r.PostForm.Get("status"),
	}
	form := userFormView{ID: id, Username: r.PostForm.Get("username"), Role: input.Role, Status: input.Status}

	var err error
	input.CareGroupID, err = optionalID(r.PostForm.Get("caregroup_id"), "care group")
	form.CareGroup = input.CareGroupID
	var user *userdomain.User
	if err == nil {
		user, err = h.Users.Update(r.Context(), identity, id, input)
	}
	if err != nil {
		if messages, ok := formMessages(err); ok {
			h.log.BusinessError("admin.users.edit: invalid input", err, "user_id", identity.UserID, "edited_id", id)
			h.renderUserForm(w, r, http.StatusUnprocessableEntity, form, messages...)
			return
		}
		h.fail(w, r, "admin.users.edit", err, "/dashboard")
		return
	}

	h.log.Info("admin.users.edit: user updated", "edited_id", user.ID, "role", user.Role, "user_id", identity.UserID)
	flash.Add(w, r, flash.Success, "User "+user.Username+" updated successfully!")
	redirect(w, r, "/admin/users")
}

func (h *Handlers) renderUserForm(w http.ResponseWriter, r *http.Request, status int, form userFormView, messages ...flash.Message) {
	groups, err := h.CareGroups.Options(r.Context())
	if err != nil {
		h.fail(w, r, "admin.users.form", err, "/dashboard")
		return
	}
	form.CareGroups = groups

	title := "Add User"
	if form.ID != 0 {
		title = "Edit User"
	}
	h.render(w, r, status, "admin/user_form.html", title, form, messages...)
}

func (h *Handlers) ListMinistries(w http.ResponseWriter, r *http.Request) {
	ministries, err := h.Ministries.List(r.Context(), middleware.IdentityFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, "admin.ministries", err, "/dashboard")
		return
	}
	h.render(w, r, http.StatusOK, "admin/ministries.html", "Ministries", ministriesView{Ministries: ministries})
}

func (h *Handlers) AddMinistryPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "admin/ministry_form.html", "Add Ministry", ministryFormView{})
}

func (h *Handlers) AddMinistry(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	input, err := parseMinistryInput(r)
	var ministry *ministrydomain.Ministry
	if err == nil {
		ministry, err = h.Ministries.Create(r.Context(), identity, input)
	}
	if err != nil {
		if messages, ok := formMessages(err); ok {
			h.log.BusinessError("admin.ministries.add: invalid input", err, "user_id", identity.UserID)
			h.render(w, r, http.StatusUnprocessableEntity, "admin/ministry_form.html", "Add Ministry",
				ministryFormView{Input: input}, messages...)
			return
		}
		h.fail(w, r, "admin.ministries.add", err, "/dashboard")
		return
	}

	h.log.Info("admin.ministries.add: ministry created", "ministry_id", ministry.ID, "user_id", identity.UserID)
	flash.Add(w, r, flash.Success, "Ministry "+ministry.Name+" added successfully!")
	redirect(w, r, "/admin/ministries")
}

func (h *Handlers) EditMinistryPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	ministry, err := h.Ministries.Get(r.Context(), middleware.IdentityFromContext(r.Context()), id)
	if err != nil {
		h.fail(w, r, "admin.ministries.edit", err, "/dashboard")
		return
	}
	h.render(w, r, http.StatusOK, "admin/ministry_form.html", "Edit Ministry", ministryFormView{
		ID: ministry.ID,
		Input: ministrydomain.Input{
			Name:        ministry.Name,
			Description: ministry.Description,
			Status:      string(ministry.Status),
		},
	})
}

func (h *Handlers) EditMinistry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	input, err := parseMinistryInput(r)
	var ministry *ministrydomain.Ministry
	if err == nil {
		ministry, err = h.Ministries.Update(r.Context(), identity, id, input)
	}
	if err != nil {
		if messages, ok := formMessages(err); ok {
			h.log.BusinessError("admin.ministries.edit: invalid input", err, "user_id", identity.UserID, "ministry_id", id)
			h.render(w, r, http.StatusUnprocessableEntity, "admin/ministry_form.html", "Edit Ministry",
				ministryFormView{ID: id, Input: input}, messages...)
			return
		}
		h.fail(w, r, "admin.ministries.edit", err, "/dashboard")
		return
	}

	h.log.Info("admin.ministries.edit: ministry updated", "ministry_id", ministry.ID, "user_id", identity.UserID)
	flash.Add(w, r, flash.Success, "Ministry "+ministry.Name+" updated successfully!")
	redirect(w, r, "/admin/ministries")
}

func (h *Handlers) DeleteMinistry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	ministry, err := h.Ministries.Delete(r.Context(), identity, id)
	if err != nil {
		h.fail(w, r, "admin.ministries.delete", err, "/dashboard")
		return
	}

	h.log.Info("admin.ministries.delete: ministry deactivated", "ministry_id", ministry.ID, "user_id", identity.UserID)
	flash.Add(w, r, flash.Success, "Ministry "+ministry.Name+" deleted successfully!")
	redirect(w, r, "/admin/ministries")
}

func parseMinistryInput(r *http.Request) (ministrydomain.Input, error) {
	if err := r.ParseForm(); err != nil {
		return ministrydomain.Input{}, err
	}
	return ministrydomain.Input{
		Name:        r.PostForm.Get("name"),
		Description: r.PostForm.Get("description"),
		Status:      r.PostForm.Get("status"),
	}, nil
}

func (h *Handlers) SystemPage(w http.ResponseWriter, r *http.Request) {
	system, err := h.Settings.System(r.Context(), middleware.IdentityFromContext(r.Context()), h.cfg.ItemsPerPage)
	if err != nil {
		h.fail(w, r, "admin.system", err, "/dashboard")
		return
	}
	h.render(w, r, http.StatusOK, "admin/system.html", "System Settings", settingdomain.SystemInput{
		DefaultTheme: system.DefaultTheme,
		ItemsPerPage: strconv.Itoa(system.ItemsPerPage),
	})
}

func (h *Handlers) UpdateSystem(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, "admin.system", err, "/dashboard")
		return
	}

	input := settingdomain.SystemInput{
		DefaultTheme: r.PostForm.Get("default_theme"),
		ItemsPerPage: r.PostForm.Get("items_per_page"),
	}
	if _, err := h.Settings.UpdateSystem(r.Context(), identity, input); err != nil {
		if messages, ok := formMessages(err); ok {
			h.log.BusinessError("admin.system: invalid input", err, "user_id", identity.UserID)
			h.render(w, r, http.StatusUnprocessableEntity, "admin/system.html", "System Settings", input, messages...)
			return
		}
		h.fail(w, r, "admin.system", err, "/dashboard")
		return
	}

	h.log.Info("admin.system: system settings updated", "user_id", identity.UserID)
	flash.Add(w, r, flash.Success, "System settings updated successfully!")
	redirect(w, r, "/admin/system")
}
