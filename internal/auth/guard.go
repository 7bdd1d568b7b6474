package auth

import (
	"context"

	"github.com/google/uuid"

	"huddle/internal/apperr"
	"huddle/internal/models"
)

// RequireRole demands an exact role match. Roles are disjoint tags, not a
// hierarchy: an administrator does not pass an employee check.
func (c *Claims) RequireRole(expected models.Role) error {
	if c.Role != expected {
		return apperr.Forbidden("only " + string(expected) + "s have access")
	}
	return nil
}

// Directory resolves subjects to their company scope. Implemented by the
// employee store; the guard trusts, never reimplements, that mapping.
type Directory interface {
	CompanyOf(ctx context.Context, empID uuid.UUID) (uuid.UUID, error)
}

// Guard answers scope questions for verified claims.
type Guard struct {
	dir Directory
}

func NewGuard(dir Directory) *Guard { return &Guard{dir: dir} }

// CompanyOf resolves the caller's company. A still-valid token whose subject
// no longer resolves (deleted employee) yields not-found.
func (g *Guard) CompanyOf(ctx context.Context, claims *Claims) (uuid.UUID, error) {
	if claims.Role == models.RoleAdmin {
		return uuid.Nil, apperr.Forbidden("administrators have no company scope")
	}
	return g.dir.CompanyOf(ctx, claims.ID)
}
