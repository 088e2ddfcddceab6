package handler

import (
	"net/http"
	"strconv"
	"strings"

	"church-app-go/internal/domain/paging"
	"church-app-go/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// pathID parses a positive numeric URL parameter.
func pathID(r *http.Request, name string) (uint, bool) {
	value, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func parseIntParam(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

// optionalID parses a select value where blank or 0 means no reference.
func optionalID(value, field string) (*uint, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return nil, validate.Failed(field + " is invalid")
	}
	id := uint(parsed)
	return &id, nil
}

func (h *Handlers) pageRequest(r *http.Request) paging.Request {
	perPage := h.Settings.ItemsPerPage(r.Context(), h.cfg.ItemsPerPage)
	return paging.Request{Page: parseIntParam(r.URL.Query().Get("page"), 1)}.Normalize(perPage)
}

func checked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "y", "yes", "on", "true":
		return true
	default:
		return false
	}
}
