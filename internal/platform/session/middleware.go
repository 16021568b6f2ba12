package session

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	HeaderName = "X-Session-ID"
	contextKey = "session"
)

// Session is the state bound to the current request.
type Session struct {
	ID    string
	State State
	dirty bool
	isNew bool
}

// Update applies fn to the state and marks it for saving.
func (s *Session) Update(fn func(*State)) {
	fn(&s.State)
	s.dirty = true
}

// FromContext returns the request's session. It returns an empty, unsaved
// session when the middleware did not run.
func FromContext(c echo.Context) *Session {
	if s, ok := c.Get(contextKey).(*Session); ok {
		return s
	}
	s := &Session{ID: uuid.NewString(), isNew: true}
	c.Set(contextKey, s)
	return s
}

// Middleware loads the session named by the cookie or X-Session-ID header,
// creating one when absent or expired, and saves it after the handler when it
// changed. A store failure degrades to an empty session rather than failing
// the request.
func Middleware(store Store, opts Options, logger zerolog.Logger) echo.MiddlewareFunc {
	opts = opts.withDefaults()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			id := c.Request().Header.Get(HeaderName)
			if id == "" {
				if ck, err := c.Cookie(opts.CookieName); err == nil {
					id = ck.Value
				}
			}
			if _, err := uuid.Parse(id); err != nil {
				id = ""
			}

			sess := &Session{ID: id}
			if id == "" {
				sess.ID = uuid.NewString()
				sess.isNew = true
			} else {
				st, err := store.Get(ctx, id)
				switch {
				case err == nil:
					sess.State = *st
				case errors.Is(err, ErrNotFound):
					sess.isNew = true
				default:
					logger.Warn().Err(err).Msg("session load failed")
				}
			}
			c.Set(contextKey, sess)

			c.SetCookie(&http.Cookie{
				Name:     opts.CookieName,
				Value:    sess.ID,
				Path:     "/",
				MaxAge:   int(opts.TTL.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			c.Response().Header().Set(HeaderName, sess.ID)

			err := next(c)

			if sess.dirty || sess.isNew {
				if serr := store.Save(ctx, sess.ID, &sess.State); serr != nil {
					logger.Warn().Err(serr).Msg("session save failed")
				}
			}
			return err
		}
	}
}
