package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	caregroupdomain "church-app-go/internal/domain/caregroup"
	memberdomain "church-app-go/internal/domain/member"
	ministrydomain "church-app-go/internal/domain/ministry"
	"church-app-go/internal/domain/paging"
	"church-app-go/internal/domain/policy"
	statusdomain "church-app-go/internal/domain/status"
	"church-app-go/internal/transport/httpserver/flash"
	"church-app-go/internal/transport/httpserver/middleware"
)

type membersView struct {
	Page        paging.Page[memberdomain.Member]
	Query       url.Values
	Search      string
	MinistryID  *uint
	CareGroupID *uint
	Status      string
	Ministries  []ministrydomain.Ministry
	CareGroups  []caregroupdomain.CareGroup
}

type memberFormView struct {
	ID          uint
	Input       memberdomain.Input
	Ministries  []ministrydomain.Ministry
	CareGroups  []caregroupdomain.CareGroup
	ShowBaptism bool
}

type memberView struct {
	Member *memberdomain.Member
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	params := r.URL.Query()

	query := memberdomain.Query{
		Search: strings.TrimSpace(params.Get("search")),
		Status: "active",
	}
	if _, ok := params["status"]; ok {
		query.Status = strings.TrimSpace(params.Get("status"))
	}
	query.MinistryID, _ = optionalID(params.Get("ministry"), "ministry")
	query.CareGroupID, _ = optionalID(params.Get("caregroup"), "caregroup")

	page, err := h.Members.List(r.Context(), identity, query, h.pageRequest(r))
	if err != nil {
		h.fail(w, r, "members.list", err, "/dashboard")
		return
	}

	ministries, careGroups, err := h.memberOptions(r, identity)
	if err != nil {
		h.fail(w, r, "members.list", err, "/dashboard")
		return
	}

	filters := url.Values{}
	for _, key := range []string{"search", "ministry", "caregroup", "status"} {
		if _, ok := params[key]; ok {
			filters.Set(key, params.Get(key))
		}
	}

	h.render(w, r, http.StatusOK, "members/list.html", "Members", membersView{
		Page:        page,
		Query:       filters,
		Search:      query.Search,
		MinistryID:  query.MinistryID,
		CareGroupID: query.CareGroupID,
		Status:      query.Status,
		Ministries:  ministries,
		CareGroups:  careGroups,
	})
}

func (h *Handlers) ViewMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	member, err := h.Members.Get(r.Context(), middleware.IdentityFromContext(r.Context()), id)
	if err != nil {
		h.fail(w, r, "members.view", err, "/members")
		return
	}
	h.render(w, r, http.StatusOK, "members/view.html", member.Fullname, memberView{Member: member})
}

func (h *Handlers) AddMemberPage(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	input := memberdomain.Input{}
	if identity.Role == policy.RoleLeader {
		input.CareGroupID = identity.CareGroupID
	}
	h.renderMemberForm(w, r, http.StatusOK, 0, input, nil)
}

func (h *Handlers) AddMember(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	input, err := parseMemberInput(r)
	var member *memberdomain.Member
	if err == nil {
		member, err = h.Members.Create(r.Context(), identity, input)
	}
	if err != nil {
		if messages, ok := formMessages(err); ok {
			h.log.BusinessError("members.add: invalid input", err, "user_id", identity.UserID)
			h.renderMemberForm(w, r, http.StatusUnprocessableEntity, 0, input, nil, messages...)
			return
		}
		h.fail(w, r, "members.add", err, "/members")
		return
	}

	h.log.Info("members.add: member created", "member_id", member.ID, "user_id", identity.UserID)
	flash.Add(w, r, flash.Success, "Member "+member.Fullname+" added successfully!")
	redirect(w, r, "/members")
}

func (h *Handlers) EditMemberPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	member, err := h.Members.GetForEdit(r.Context(), middleware.IdentityFromContext(r.Context()), id)
	if err != nil {
		h.fail(w, r, "members.edit", err, "/members")
		return
	}
	h.renderMemberForm(w, r, http.StatusOK, member.ID, memberToInput(member), member)
}

func (h *Handlers) EditMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}
	identity := middleware.IdentityFromContext(r.Context())
	input, err := parseMemberInput(r)
	var member *memberdomain.Member
	if err == nil {
		member, err = h.Members.Update(r.Context(), identity, id, input)
	}
	if err != nil {
		if messages, ok := formMessages(err); ok {
			h.log.BusinessError("members.edit: invalid input", err, "user_id", identity.UserID, "member_id", id)
			stored, _ := h.Members.GetForEdit(r.Context(), identity, id)
			h.renderMemberForm(w, r, http.StatusUnprocessableEntity, id, input, stored, messages...)
			return
		}
		h.fail(w, r, "members.edit", err, "/members")
		return
	}

	h.log.Info("members.edit: member updated", "member_id", member.ID, "user_id", identity.UserID)
	flash.Add(w, r, flash.Success, "Member "+member.Fullname+" updated successfully!")
	redirect(w, r, "/members/"+strconv.FormatUint(uint64(member.ID), 10))
}

func (h *Handlers) DeactivateMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	member, err := h.Members.Deactivate(r.Context(), identity, id)
	if err != nil {
		h.fail(w, r, "members.deactivate", err, "/members")
		return
	}

	h.log.Info("members.deactivate: member deactivated", "member_id", member.ID, "user_id", identity.UserID)
	flash.Add(w, r, flash.Success, "Member "+member.Fullname+" has been deactivated.")
	redirect(w, r, "/members")
}

// renderMemberForm shows the add or edit form. stored is the member being
// edited, if any; its references stay selectable after they are deactivated.
func (h *Handlers) renderMemberForm(w http.ResponseWriter, r *http.Request, status int, id uint, input memberdomain.Input, stored *memberdomain.Member, messages ...flash.Message) {
	identity := middleware.IdentityFromContext(r.Context())
	ministries, careGroups, err := h.memberOptions(r, identity)
	if err != nil {
		h.fail(w, r, "members.form", err, "/members")
		return
	}
	ministries, careGroups = withStoredRefs(ministries, careGroups, stored)

	title := "Add Member"
	if id != 0 {
		title = "Edit Member"
	}
	h.render(w, r, status, "members/form.html", title, memberFormView{
		ID:          id,
		Input:       input,
		Ministries:  ministries,
		CareGroups:  careGroups,
		ShowBaptism: h.Settings.BaptismFieldEnabled(r.Context()),
	}, messages...)
}

// memberOptions lists the ministries and care groups offered to identity.
// Leaders are only offered their own care group.
func (h *Handlers) memberOptions(r *http.Request, identity policy.Identity) ([]ministrydomain.Ministry, []caregroupdomain.CareGroup, error) {
	ministries, err := h.Ministries.Options(r.Context())
	if err != nil {
		return nil, nil, err
	}
	careGroups, err := h.CareGroups.Options(r.Context())
	if err != nil {
		return nil, nil, err
	}

	if scope, scoped := policy.MemberScope(identity); scoped {
		own := make([]caregroupdomain.CareGroup, 0, 1)
		for _, group := range careGroups {
			if scope != nil && group.ID == *scope {
				own = append(own, group)
			}
		}
		careGroups = own
	}
	return ministries, careGroups, nil
}

// withStoredRefs appends the stored member's ministry and care group when the
// active option lists no longer carry them.
func withStoredRefs(ministries []ministrydomain.Ministry, careGroups []caregroupdomain.CareGroup, stored *memberdomain.Member) ([]ministrydomain.Ministry, []caregroupdomain.CareGroup) {
	if stored == nil {
		return ministries, careGroups
	}

	if id := stored.MinistryID; id != nil {
		found := false
		for _, ministry := range ministries {
			if ministry.ID == *id {
				found = true
				break
			}
		}
		if !found {
			ministries = append(ministries, ministrydomain.Ministry{ID: *id, Name: stored.MinistryName, Status: statusdomain.Inactive})
		}
	}

	if id := stored.CareGroupID; id != nil {
		found := false
		for _, group := range careGroups {
			if group.ID == *id {
				found = true
				break
			}
		}
		if !found {
			careGroups = append(careGroups, caregroupdomain.CareGroup{ID: *id, Name: stored.CareGroupName, Status: statusdomain.Inactive})
		}
	}
	return ministries, careGroups
}

func parseMemberInput(r *http.Request) (memberdomain.Input, error) {
	if err := r.ParseForm(); err != nil {
		return memberdomain.Input{}, err
	}
	form := r.PostForm

	input := memberdomain.Input{
		Fullname:    form.Get("fullname"),
		DateOfBirth: form.Get("date_of_birth"),
		Age:         form.Get("age"),
		Gender:      form.Get("gender"),
		Address:     form.Get("address"),
		Contact:     form.Get("contact"),
		BaptismDate: form.Get("baptism_date"),
	}

	var err error
	if input.MinistryID, err = optionalID(form.Get("ministry_id"), "ministry"); err != nil {
		return input, err
	}
	if input.CareGroupID, err = optionalID(form.Get("caregroup_id"), "caregroup"); err != nil {
		return input, err
	}
	return input, nil
}

func memberToInput(member *memberdomain.Member) memberdomain.Input {
	input := memberdomain.Input{
		Fullname:    member.Fullname,
		Gender:      member.Gender,
		Address:     member.Address,
		Contact:     member.Contact,
		MinistryID:  member.MinistryID,
		CareGroupID: member.CareGroupID,
	}
	if member.DateOfBirth != nil {
		input.DateOfBirth = member.DateOfBirth.Format("2006-01-02")
	}
	if member.BaptismDate != nil {
		input.BaptismDate = member.BaptismDate.Format("2006-01-02")
	}
	if member.Age != nil {
		input.Age = strconv.Itoa(*member.Age)
	}
	return input
}
