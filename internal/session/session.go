// Package session holds the request-scoped state that travels with a
// browser: the logged-in identity, one-shot flash notices and the page to
// return to after login. A Session is loaded once per request, handed down
// the handler chain through the echo context and saved when the handler
// returns.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Flash holds notices shown on the next rendered page only.
type Flash struct {
	Success []string `json:"success,omitempty"`
	Error   []string `json:"error,omitempty"`
}

// Empty reports whether there is nothing to show.
func (f Flash) Empty() bool { return len(f.Success) == 0 && len(f.Error) == 0 }

// Session is the server-side state addressed by the session cookie.
type Session struct {
	ID       string `json:"-"`
	UserID   uint64 `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Flash    Flash  `json:"flash"`
	ReturnTo string `json:"return_to,omitempty"`
}

// New returns an anonymous session with a fresh random id.
func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// Blank reports whether the session holds nothing worth persisting.
func (s *Session) Blank() bool {
	return !s.Authenticated() && s.Flash.Empty() && s.ReturnTo == ""
}

// Renew gives the session a fresh id. Call it whenever the privilege level
// changes so that an id planted before login is worthless afterwards.
func (s *Session) Renew() { s.ID = uuid.NewString() }

// Authenticated reports whether a user is logged in on this session.
func (s *Session) Authenticated() bool { return s.UserID != 0 }

// Login attaches an identity to the session.
func (s *Session) Login(userID uint64, username string) {
	s.UserID = userID
	s.Username = username
}

// Logout detaches the identity but keeps pending notices.
func (s *Session) Logout() {
	s.UserID = 0
	s.Username = ""
	s.ReturnTo = ""
}

func (s *Session) AddSuccess(msg string) { s.Flash.Success = append(s.Flash.Success, msg) }
func (s *Session) AddError(msg string)   { s.Flash.Error = append(s.Flash.Error, msg) }

// TakeFlash returns the pending notices and clears them.
func (s *Session) TakeFlash() Flash {
	f := s.Flash
	s.Flash = Flash{}
	return f
}

// TakeReturnTo returns the stored post-login destination, or def when none
// was recorded, and clears it.
func (s *Session) TakeReturnTo(def string) string {
	dst := s.ReturnTo
	s.ReturnTo = ""
	if dst == "" {
		return def
	}
	return dst
}

// Store persists sessions between requests. Load returns (nil, nil) for an
// unknown or expired id.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
