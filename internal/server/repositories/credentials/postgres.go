package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/smartbrain/internal/common"
	"github.com/dmitrijs2005/smartbrain/internal/dbx"
	"github.com/dmitrijs2005/smartbrain/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a credential. A duplicate email yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, c *models.Credential) (*models.Credential, error) {
	query :=
		`INSERT INTO login (hash, email)
		 VALUES ($1, $2)
		 RETURNING id, email
		 `

	err := r.db.QueryRowContext(ctx, query, c.Hash, c.Email).Scan(&c.ID, &c.Email)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	query :=
		`SELECT id, email, hash FROM login
		 WHERE email = $1
		 `

	c := &models.Credential{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Email, &c.Hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}
