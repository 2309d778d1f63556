package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/listings/internal/session"
	"github.com/wanderlust/listings/internal/utils"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "session"

// SessionConfig configures LoadSession.
type SessionConfig struct {
	Store  session.Store
	Secret string
	TTL    time.Duration
	Secure bool // mark the cookie Secure (production behind TLS)
}

// LoadSession resolves the session cookie to a stored session, or starts a
// new anonymous one, and saves it after the handler ran. Flash notices are
// taken out of the session on the way in so that each notice is shown on
// exactly one page.
//
// A new session is only stored, and only gets a cookie, once it carries
// something: health checks and crawlers that never log in leave no trace. When a
// handler renews the session id the old entry is deleted and the cookie is
// reissued.
func LoadSession(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var (
				sess   *session.Session
				loaded string // id the request arrived with, if it resolved
			)
			if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
				if sid, err := utils.ParseSessionToken(cfg.Secret, ck.Value); err == nil {
					s, err := cfg.Store.Load(ctx, sid)
					if err != nil {
						return err
					}
					if s != nil {
						sess, loaded = s, sid
					}
				}
			}
			if sess == nil {
				sess = session.New()
			}

			persist := func() bool { return loaded != "" || !sess.Blank() }

			c.Response().Before(func() {
				if sess.ID == loaded || !persist() {
					return
				}
				if err := setSessionCookie(c, cfg, sess.ID); err != nil {
					c.Logger().Errorf("[session] issue cookie: %v", err)
				}
			})

			c.Set(sessionKey, sess)
			c.Set(flashKey, sess.TakeFlash())

			herr := next(c)

			if loaded != "" && sess.ID != loaded {
				if err := cfg.Store.Delete(ctx, loaded); err != nil {
					c.Logger().Errorf("[session] delete %s: %v", loaded, err)
				}
			}
			if persist() {
				if err := cfg.Store.Save(ctx, sess, cfg.TTL); err != nil {
					c.Logger().Errorf("[session] save %s: %v", sess.ID, err)
				}
			}
			return herr
		}
	}
}

func setSessionCookie(c echo.Context, cfg SessionConfig, sid string) error {
	tok, err := utils.NewSessionToken(cfg.Secret, sid, cfg.TTL)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		MaxAge:   int(cfg.TTL / time.Second),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
