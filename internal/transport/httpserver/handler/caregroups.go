package handler

import (
	"net/http"
	"strconv"

	caregroupdomain "church-app-go/internal/domain/caregroup"
	memberdomain "church-app-go/internal/domain/member"
	userdomain "church-app-go/internal/domain/user"
	"church-app-go/internal/transport/httpserver/flash"
	"church-app-go/internal/transport/httpserver/middleware"
)

type careGroupsView struct {
	CareGroups []caregroupdomain.CareGroup
}

type careGroupView struct {
	CareGroup *caregroupdomain.CareGroup
	Members   []memberdomain.Member
}

type careGroupFormView struct {
	ID      uint
	Input   caregroupdomain.Input
	Leaders []userdomain.User
}

func (h *Handlers) ListCareGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.CareGroups.List(r.Context(), middleware.IdentityFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, "caregroups.list", err, "/dashboard")
		return
	}
	h.render(w, r, http.StatusOK, "caregroups/list.html", "Care Groups", careGroupsView{CareGroups: groups})
}

func (h *Handlers) ViewCareGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	group, err := h.CareGroups.Get(r.Context(), identity, id)
	if err != nil {
		h.fail(w, r, "caregroups.view", err, "/caregroups")
		return
	}
	members, err := h.Members.ListByCareGroup(r.Context(), identity, group.ID)
	if err != nil {
		h.fail(w, r, "caregroups.view", err, "/caregroups")
		return
	}
	h.render(w, r, http.StatusOK, "caregroups/view.html", group.Name, careGroupView{CareGroup: group, Members: members})
}

func (h *Handlers) AddCareGroupPage(w http.ResponseWriter, r *http.Request) {
	h.renderCareGroupForm(w, r, http.StatusOK, 0, caregroupdomain.Input{Color: caregroupdomain.DefaultColor})
}

func (h *Handlers) AddCareGroup(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	input, err := parseCareGroupInput(r)
	var group *caregroupdomain.CareGroup
	if err == nil {
		group, err = h.CareGroups.Create(r.Context(), identity, input)
	}
	if err != nil {
		if messages, ok := formMessages(err); ok {
			h.log.BusinessError("caregroups.add: invalid input", err, "user_id", identity.UserID)
			h.renderCareGroupForm(w, r, http.StatusUnprocessableEntity, 0, input, messages...)
			return
		}
		h.fail(w, r, "caregroups.add", err, "/caregroups")
		return
	}

	h.log.Info("caregroups.add: care group created", "caregroup_id", group.ID, "user_id", identity.UserID)
	flash.Add(w, r, flash.Success, "Care group "+group.Name+" added successfully!")
	redirect(w, r, "/caregroups")
}

func (h *Handlers) EditCareGroupPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	group, err := h.CareGroups.GetForEdit(r.Context(), middleware.IdentityFromContext(r.Context()), id)
	if err != nil {
		h.fail(w, r, "caregroups.edit", err, "/caregroups")
		return
	}
	h.renderCareGroupForm(w, r, http.StatusOK, group.ID, caregroupdomain.Input{
		Name:     group.Name,
		Color:    group.Color,
		LeaderID: group.LeaderID,
		Status:   string(group.Status),
	})
}

func (h *Handlers) EditCareGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	input, err := parseCareGroupInput(r)
	var group *caregroupdomain.CareGroup
	if err == nil {
		group, err = h.CareGroups.Update(r.Context(), identity, id, input)
	}
	if err != nil {
		if messages, ok := formMessages(err); ok {
			h.log.BusinessError("caregroups.edit: invalid input", err, "user_id", identity.UserID, "caregroup_id", id)
			h.renderCareGroupForm(w, r, http.StatusUnprocessableEntity, id, input, messages...)
			return
		}
		h.fail(w, r, "caregroups.edit", err, "/caregroups")
		return
	}

	h.log.Info("caregroups.edit: care group updated", "caregroup_id", group.ID, "user_id", identity.UserID)
	flash.Add(w, r, flash.Success, "Care group "+group.Name+" updated successfully!")
	redirect(w, r, "/caregroups/"+strconv.FormatUint(uint64(group.ID), 10))
}

func (h *Handlers) renderCareGroupForm(w http.ResponseWriter, r *http.Request, status int, id uint, input caregroupdomain.Input, messages ...flash.Message) {
	leaders, err := h.Users.LeaderCandidates(r.Context())
	if err != nil {
		h.fail(w, r, "caregroups.form", err, "/caregroups")
		return
	}

	title := "Add Care Group"
	if id != 0 {
		title = "Edit Care Group"
	}
	h.render(w, r, status, "caregroups/form.html", title, careGroupFormView{ID: id, Input: input, Leaders: leaders}, messages...)
}

func parseCareGroupInput(r *http.Request) (caregroupdomain.Input, error) {
	if err := r.ParseForm(); err != nil {
		return caregroupdomain.Input{}, err
	}
	form := r.PostForm

	input := caregroupdomain.Input{
		Name:   form.Get("name"),
		Color:  form.Get("color"),
		Status: form.Get("status"),
	}
	var err error
	if input.LeaderID, err = optionalID(form.Get("leader_id"), "leader"); err != nil {
		return input, err
	}
	return input, nil
}
