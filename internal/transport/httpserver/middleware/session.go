package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"church-app-go/internal/config"
	sessiondomain "church-app-go/internal/domain/session"
	userdomain "church-app-go/internal/domain/user"
	"church-app-go/internal/transport/httpserver/flash"
	"church-app-go/pkg/logger"
)

const LoginPath = "/auth/login"

type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*userdomain.User, error)
}

type SessionManager interface {
	Issue(userID uint, remember bool) (string, sessiondomain.Session, error)
	Resolve(ctx context.Context, token string) (sessiondomain.Session, error)
	Revoke(ctx context.Context, token string) error
}

// Sessions restores the logged-in user from the session cookie.
type Sessions struct {
	cfg      config.SessionConfig
	sessions SessionManager
	users    UserLoader
	log      logger.Logger
}

func NewSessions(cfg config.SessionConfig, sessions SessionManager, users UserLoader, log logger.Logger) *Sessions {
	if cfg.CookieName == "" {
		cfg.CookieName = "cis_session"
	}
	return &Sessions{cfg: cfg, sessions: sessions, users: users, log: log}
}

// Load attaches the session user to the request context. Invalid, revoked
// or orphaned sessions and inactive users are treated as anonymous and the
// cookie is cleared.
func (s *Sessions) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.cfg.CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := s.sessions.Resolve(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, sessiondomain.ErrInvalidSession) && !errors.Is(err, sessiondomain.ErrSessionRevoked) {
				s.log.InternalError("session.load: resolve failed", err)
			}
			s.clearCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.users.GetByID(r.Context(), sess.UserID)
		if err != nil {
			if !errors.Is(err, userdomain.ErrUserNotFound) {
				s.log.InternalError("session.load: load user failed", err, "user_id", sess.UserID)
			}
			s.clearCookie(w)
			next.ServeHTTP(w, r)
			return
		}
		if !user.IsActive() {
			s.log.BusinessError("session.load: user inactive", userdomain.ErrAccountDisabled, "user_id", user.ID)
			s.clearCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireLogin redirects anonymous requests to the login page, remembering
// where they were headed.
func (s *Sessions) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		flash.Add(w, r, flash.Info, "Please log in to access this page.")
		http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
	})
}

// Start issues a session for userID and sets the cookie. A remembered
// session gets a persistent cookie; otherwise it ends with the browser.
func (s *Sessions) Start(w http.ResponseWriter, userID uint, remember bool) error {
	token, sess, err := s.sessions.Issue(userID, remember)
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		cookie.Expires = sess.ExpiresAt
		cookie.MaxAge = int(time.Until(sess.ExpiresAt).Seconds())
	}
	http.SetCookie(w, cookie)
	return nil
}

// End revokes the current session, if any, and clears the cookie.
func (s *Sessions) End(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cfg.CookieName); err == nil && cookie.Value != "" {
		if err := s.sessions.Revoke(r.Context(), cookie.Value); err != nil {
			s.log.InternalError("session.end: revoke failed", err)
		}
	}
	s.clearCookie(w)
}

func (s *Sessions) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func LoginURL(next string) string {
	if next == "" || next == "/" {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// SafeNext returns next when it is a local path and fallback otherwise.
func SafeNext(next, fallback string) string {
	if next == "" || next[0] != '/' || (len(next) > 1 && (next[1] == '/' || next[1] == '\\')) {
		return fallback
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.IsAbs() || parsed.Host != "" {
		return fallback
	}
	return next
}
