package profiles

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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query :=
		`INSERT INTO users (email, name, joined)
		 VALUES ($1, $2, $3)
		 RETURNING id, COALESCE(name, ''), email, entries, joined
		 `

	out := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, p.Email, p.Name, p.Joined).
		Scan(&out.ID, &out.Name, &out.Email, &out.Entries, &out.Joined)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	query :=
		`SELECT id, COALESCE(name, ''), email, entries, joined FROM users
		 WHERE id = $1
		 `

	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query :=
		`SELECT id, COALESCE(name, ''), email, entries, joined FROM users
		 WHERE email = $1
		 `

	return r.getOne(ctx, query, email)
}

// IncrementEntries bumps the entry counter of profile id by one and returns
// the new value. The update is a single statement, so concurrent calls
// never lose increments.
func (r *PostgresRepository) IncrementEntries(ctx context.Context, id int64) (int64, error) {
	query :=
		`UPDATE users SET entries = entries + 1
		 WHERE id = $1
		 RETURNING entries
		 `

	var entries int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&entries)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Profile, error) {
	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.Name, &p.Email, &p.Entries, &p.Joined)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}
