package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"church-app-go/internal/config"
	"church-app-go/internal/domain/policy"
	userdomain "church-app-go/internal/domain/user"
	"church-app-go/internal/transport/httpserver/flash"
	"church-app-go/internal/transport/httpserver/middleware"
)

const layoutFile = "templates/layout.html"

// Renderer holds one parsed template set per page, each combined with the layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer(fsys fs.FS) (*Renderer, error) {
	pageFiles, err := fs.Glob(fsys, "templates/*/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		name := strings.TrimPrefix(file, "templates/")
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("template %s not found", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute template %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// view is what every page template receives.
type view struct {
	Title    string
	User     *userdomain.User
	Identity policy.Identity
	Theme    string
	Church   string
	App      config.AppInfo
	Flashes  []flash.Message
	Path     string
	Data     any
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any, messages ...flash.Message) {
	v := view{
		Title:   title,
		Theme:   "light",
		App:     h.cfg.App,
		Flashes: append(flash.Pop(w, r), messages...),
		Path:    r.URL.Path,
		Data:    data,
	}

	if church, err := h.Settings.Church(r.Context()); err == nil && church.Name != "" {
		v.Church = church.Name
	} else {
		v.Church = h.cfg.App.Name
	}

	if user, ok := middleware.UserFromContext(r.Context()); ok {
		v.User = user
		v.Identity = user.Identity()
		v.Theme = string(user.Theme)
	} else if theme, err := h.Settings.Get(r.Context(), "default_theme", "light"); err == nil {
		v.Theme = theme
	}

	if err := h.views.Render(w, status, page, v); err != nil {
		h.log.InternalError("render: template failed", err, "page", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

var templateFuncs = template.FuncMap{
	"can": func(identity policy.Identity, action string) bool {
		return policy.Allowed(identity, policy.Action(action), policy.Target{})
	},
	"canFor": func(identity policy.Identity, action string, careGroupID *uint) bool {
		return policy.Allowed(identity, policy.Action(action), policy.Target{CareGroupID: careGroupID})
	},
	"canGroup": func(identity policy.Identity, action string, careGroupID uint) bool {
		return policy.Allowed(identity, policy.Action(action), policy.Target{CareGroupID: &careGroupID})
	},
	"date": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"intval": func(v *int) string {
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	},
	"isID": func(p *uint, id uint) bool {
		return p != nil && *p == id
	},
	"idval": func(p *uint) string {
		if p == nil {
			return ""
		}
		return strconv.FormatUint(uint64(*p), 10)
	},
	"withPage": func(query url.Values, page int) string {
		values := url.Values{}
		for key, vals := range query {
			values[key] = append([]string(nil), vals...)
		}
		values.Set("page", strconv.Itoa(page))
		return "?" + values.Encode()
	},
	"active": func(path, prefix string) bool {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	},
}
