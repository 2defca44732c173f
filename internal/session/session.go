// Package session keeps per-browser state on the server, keyed by an opaque cookie.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "frp_session"

const localsKey = "session"

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 7 * 24 * time.Hour

// ErrNotFound is returned by a Store when the id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Data is the persisted part of a session.
type Data struct {
	UserID  uint              `json:"user_id,omitempty"`
	Email   string            `json:"email,omitempty"`
	Captcha string            `json:"captcha,omitempty"`
	Flash   []string          `json:"flash,omitempty"`
	Scratch map[string]string `json:"scratch,omitempty"`
}

// Store persists session data.
type Store interface {
	Load(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	// DeleteUser removes every session bound to userID.
	DeleteUser(ctx context.Context, userID uint) error
}

// Manager loads and commits sessions around each request.
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
}

// NewManager returns a Manager. secure marks the cookie Secure (production).
func NewManager(store Store, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl, secure: secure}
}

// Store exposes the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// Session is the request-scoped view of one browser session.
type Session struct {
	id        string
	data      *Data
	dirty     bool
	destroyed bool
	staleIDs  []string
}

// Handler loads the session before the route runs and persists it afterwards.
func (m *Manager) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := m.load(c)
		c.Locals(localsKey, sess)

		err := c.Next()

		if cerr := m.commit(c, sess); cerr != nil && err == nil {
			err = cerr
		}
		return err
	}
}

func (m *Manager) load(c *fiber.Ctx) *Session {
	id := c.Cookies(CookieName)
	if id != "" {
		data, err := m.store.Load(c.UserContext(), id)
		if err == nil {
			return &Session{id: id, data: data}
		}
	}
	return &Session{id: uuid.NewString(), data: &Data{}}
}

func (m *Manager) commit(c *fiber.Ctx, s *Session) error {
	ctx := c.UserContext()
	for _, stale := range s.staleIDs {
		_ = m.store.Delete(ctx, stale)
	}

	if s.destroyed {
		if err := m.store.Delete(ctx, s.id); err != nil {
			return err
		}
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   m.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return nil
	}

	if !s.dirty {
		return nil
	}
	if err := m.store.Save(ctx, s.id, s.data, m.ttl); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    s.id,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		Expires:  time.Now().Add(m.ttl),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// From returns the session attached by Handler, or an empty detached
// session when the middleware did not run.
func From(c *fiber.Ctx) *Session {
	if s, ok := c.Locals(localsKey).(*Session); ok {
		return s
	}
	s := &Session{id: uuid.NewString(), data: &Data{}}
	c.Locals(localsKey, s)
	return s
}

// ID returns the opaque session id.
func (s *Session) ID() string { return s.id }

// UserID returns the authenticated user id, or 0.
func (s *Session) UserID() uint { return s.data.UserID }

// Email returns the authenticated user's email.
func (s *Session) Email() string { return s.data.Email }

// Authenticated reports whether a user is bound to the session.
func (s *Session) Authenticated() bool { return s.data.UserID != 0 }

// Login binds the user to the session and rotates its id. Form scratch and
// queued flashes belong to whoever was signed in before, so they are dropped
// when the bound user changes.
func (s *Session) Login(userID uint, email string) {
	s.staleIDs = append(s.staleIDs, s.id)
	s.id = uuid.NewString()
	if s.data.UserID != userID {
		s.data.Scratch = nil
		s.data.Flash = nil
	}
	s.data.UserID = userID
	s.data.Email = email
	s.data.Captcha = ""
	s.dirty = true
}

// Destroy drops the session from the store and clears the cookie at commit.
func (s *Session) Destroy() {
	s.destroyed = true
	s.data = &Data{}
}

// SetCaptcha stores the expected signup captcha.
func (s *Session) SetCaptcha(code string) {
	s.data.Captcha = code
	s.dirty = true
}

// Captcha returns the expected signup captcha, if any.
func (s *Session) Captcha() string { return s.data.Captcha }

// AddFlash queues a one-shot message for the next rendered page.
func (s *Session) AddFlash(msg string) {
	s.data.Flash = append(s.data.Flash, msg)
	s.dirty = true
}

// Flashes returns and clears queued messages.
func (s *Session) Flashes() []string {
	if len(s.data.Flash) == 0 {
		return nil
	}
	out := s.data.Flash
	s.data.Flash = nil
	s.dirty = true
	return out
}

// SetScratch stores v, JSON encoded, under key.
func (s *Session) SetScratch(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if s.data.Scratch == nil {
		s.data.Scratch = make(map[string]string)
	}
	s.data.Scratch[key] = string(raw)
	s.dirty = true
	return nil
}

// Scratch decodes the value under key into dest and reports whether it was present.
func (s *Session) Scratch(key string, dest any) bool {
	raw, ok := s.data.Scratch[key]
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}
