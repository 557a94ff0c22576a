package slot

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieBackend keeps each slot in its own HttpOnly cookie on the visitor's browser.
type CookieBackend struct {
	opts CookieOptions
}

// NewCookieBackend builds a cookie backend.
func NewCookieBackend(opts CookieOptions) *CookieBackend {
	return &CookieBackend{opts: opts}
}

// Open returns a store bound to the request. Writes made during the request
// are visible to later reads in the same request.
func (b *CookieBackend) Open(c *fiber.Ctx) (Store, error) {
	return &cookieStore{c: c, opts: b.opts, pending: make(map[string]*string)}, nil
}

type cookieStore struct {
	c       *fiber.Ctx
	opts    CookieOptions
	pending map[string]*string
}

func (s *cookieStore) Get(_ context.Context, key string) (string, error) {
	if val, ok := s.pending[key]; ok {
		if val == nil {
			return "", ErrNotFound
		}
		return *val, nil
	}
	val := s.c.Cookies(key)
	if val == "" {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *cookieStore) Set(_ context.Context, key, value string) error {
	s.c.Cookie(s.opts.cookie(key, value))
	s.pending[key] = &value
	return nil
}

func (s *cookieStore) Delete(_ context.Context, key string) error {
	ck := s.opts.cookie(key, "")
	ck.Expires = time.Unix(0, 0).UTC()
	s.c.Cookie(ck)
	s.pending[key] = nil
	return nil
}
