// Package slot holds the per-visitor key-value storage where credential
// tokens live between requests.
package slot

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a slot holds no value.
var ErrNotFound = errors.New("slot: not found")

const visitorLocalsKey = "slot_visitor_id"

// Store is one visitor's storage. Writes replace the whole value.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Backend opens the store belonging to the visitor behind a request.
type Backend interface {
	Open(c *fiber.Ctx) (Store, error)
}

// Repository persists slot values server side, keyed by visitor id.
type Repository interface {
	Get(ctx context.Context, visitorID, key string) (string, error)
	Set(ctx context.Context, visitorID, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, visitorID, key string) error
}

// CookieOptions are shared by every cookie the portal writes.
type CookieOptions struct {
	Secure bool
	Domain string
	TTL    time.Duration
}

func (o CookieOptions) cookie(name, value string) *fiber.Cookie {
	ck := &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   o.Domain,
		Secure:   o.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if o.TTL > 0 {
		ck.Expires = time.Now().Add(o.TTL)
	}
	return ck
}

// ServerBackend keeps slot values in a Repository and identifies the
// visitor by a random id cookie.
type ServerBackend struct {
	repo          Repository
	visitorCookie string
	opts          CookieOptions
}

// NewServerBackend builds a backend over repo.
func NewServerBackend(repo Repository, visitorCookie string, opts CookieOptions) *ServerBackend {
	if visitorCookie == "" {
		visitorCookie = "portal_visitor"
	}
	return &ServerBackend{repo: repo, visitorCookie: visitorCookie, opts: opts}
}

// Open resolves the visitor id, issuing a new one when the cookie is absent or invalid.
func (b *ServerBackend) Open(c *fiber.Ctx) (Store, error) {
	if id, ok := c.Locals(visitorLocalsKey).(string); ok && id != "" {
		return &visitorStore{repo: b.repo, visitorID: id, ttl: b.opts.TTL}, nil
	}

	id := c.Cookies(b.visitorCookie)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
		c.Cookie(b.opts.cookie(b.visitorCookie, id))
	}
	c.Locals(visitorLocalsKey, id)
	return &visitorStore{repo: b.repo, visitorID: id, ttl: b.opts.TTL}, nil
}

type visitorStore struct {
	repo      Repository
	visitorID string
	ttl       time.Duration
}

func (s *visitorStore) Get(ctx context.Context, key string) (string, error) {
	return s.repo.Get(ctx, s.visitorID, key)
}

func (s *visitorStore) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, s.visitorID, key, value, s.ttl)
}

func (s *visitorStore) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, s.visitorID, key)
}
