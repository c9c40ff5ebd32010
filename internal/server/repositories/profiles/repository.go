// Package profiles stores user profile rows in the users table.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/smartbrain/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	IncrementEntries(ctx context.Context, id int64) (int64, error)
}
