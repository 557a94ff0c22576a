package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "auth_principal"

// Principal represents the authenticated visitor for one slot.
type Principal struct {
	Slot      Slot
	SubjectID string
	Token     string
	ExpiresAt time.Time
}

// Gate guards a route tree with one credential slot.
type Gate struct {
	creds *Credentials
	slot  Slot
}

// NewGate constructs a gate for sl.
func NewGate(creds *Credentials, sl Slot) *Gate {
	return &Gate{creds: creds, slot: sl}
}

// Handle lets authenticated visitors through and redirects everyone else
// to the slot's login page before any protected handler runs.
func (g *Gate) Handle(c *fiber.Ctx) error {
	res := g.creds.CheckRequest(c, g.slot)
	if !res.Allowed() {
		return c.Redirect(g.slot.LoginPath, fiber.StatusFound)
	}
	c.Locals(principalKey+g.slot.Name, &Principal{
		Slot:      g.slot,
		SubjectID: res.SubjectID,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
	return c.Next()
}

// GuestOnly sends already authenticated visitors to the slot's home page.
func (g *Gate) GuestOnly(c *fiber.Ctx) error {
	if g.creds.CheckRequest(c, g.slot).Allowed() {
		return c.Redirect(g.slot.HomePath, fiber.StatusFound)
	}
	return c.Next()
}

// PrincipalFromContext retrieves the visitor admitted by the gate for sl.
func PrincipalFromContext(c *fiber.Ctx, sl Slot) (*Principal, bool) {
	val := c.Locals(principalKey + sl.Name)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
