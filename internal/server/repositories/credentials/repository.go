// Package credentials stores email/password-hash pairs in the login table.
package credentials

import (
	"context"

	"github.com/dmitrijs2005/smartbrain/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Credential) (*models.Credential, error)
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
}
