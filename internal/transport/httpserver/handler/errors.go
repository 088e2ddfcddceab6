package handler

import (
	"errors"
	"net/http"

	caregroupdomain "church-app-go/internal/domain/caregroup"
	memberdomain "church-app-go/internal/domain/member"
	ministrydomain "church-app-go/internal/domain/ministry"
	"church-app-go/internal/domain/policy"
	userdomain "church-app-go/internal/domain/user"
	"church-app-go/internal/transport/httpserver/flash"
	"church-app-go/internal/transport/httpserver/middleware"
	"church-app-go/pkg/validate"
)

// formMessages extracts messages for errors the user can fix by editing the form.
func formMessages(err error) ([]flash.Message, bool) {
	var invalid *validate.Error
	switch {
	case errors.As(err, &invalid):
		messages := make([]flash.Message, 0, len(invalid.Messages))
		for _, text := range invalid.Messages {
			messages = append(messages, flash.Message{Category: flash.Danger, Text: text})
		}
		return messages, true
	case errors.Is(err, userdomain.ErrUsernameTaken):
		return []flash.Message{{Category: flash.Danger, Text: "Username already exists."}}, true
	case errors.Is(err, caregroupdomain.ErrNameTaken):
		return []flash.Message{{Category: flash.Danger, Text: "A care group with that name already exists."}}, true
	case errors.Is(err, ministrydomain.ErrNameTaken):
		return []flash.Message{{Category: flash.Danger, Text: "A ministry with that name already exists."}}, true
	case errors.Is(err, validate.ErrInvalid):
		return []flash.Message{{Category: flash.Danger, Text: err.Error()}}, true
	}
	return nil, false
}

func isNotFound(err error) bool {
	return errors.Is(err, memberdomain.ErrMemberNotFound) ||
		errors.Is(err, caregroupdomain.ErrCareGroupNotFound) ||
		errors.Is(err, ministrydomain.ErrMinistryNotFound) ||
		errors.Is(err, userdomain.ErrUserNotFound)
}

// fail handles errors that end the request: missing records, refusals and
// unexpected failures. deniedTo is where a refused user is sent.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error, deniedTo string) {
	identity := middleware.IdentityFromContext(r.Context())
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		h.log.BusinessError(op+": request body too large", err, "user_id", identity.UserID, "limit", tooLarge.Limit)
		h.render(w, r, http.StatusRequestEntityTooLarge, "errors/error.html", "Too Large", errorView{
			Status:  http.StatusRequestEntityTooLarge,
			Message: "The submitted form is too large.",
		})
	case errors.Is(err, policy.ErrUnauthenticated):
		redirect(w, r, middleware.LoginURL(r.URL.RequestURI()))
	case errors.Is(err, policy.ErrPermissionDenied):
		h.log.BusinessError(op+": permission denied", err, "user_id", identity.UserID, "role", identity.Role)
		flash.Add(w, r, flash.Warning, err.Error())
		redirect(w, r, deniedTo)
	case isNotFound(err):
		h.log.BusinessError(op+": not found", err, "user_id", identity.UserID, "path", r.URL.Path)
		h.notFound(w, r)
	default:
		h.log.InternalError(op+": failed", err, "user_id", identity.UserID, "path", r.URL.Path)
		h.render(w, r, http.StatusInternalServerError, "errors/error.html", "Error", errorView{
			Status:  http.StatusInternalServerError,
			Message: "Something went wrong. Please try again.",
		})
	}
}

type errorView struct {
	Status  int
	Message string
}

func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "errors/error.html", "Not Found", errorView{
		Status:  http.StatusNotFound,
		Message: "The page you are looking for does not exist.",
	})
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}

func (h *Handlers) badRequest(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.log.BusinessError(op+": bad request", err, "path", r.URL.Path)
	h.render(w, r, http.StatusBadRequest, "errors/error.html", "Bad Request", errorView{
		Status:  http.StatusBadRequest,
		Message: "The request could not be understood.",
	})
}
