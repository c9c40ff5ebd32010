// Package services contains server-side business logic. AuthService handles
// registration and sign-in; ProfileService handles profile reads and the
// image entry counter.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/smartbrain/internal/common"
	"github.com/dmitrijs2005/smartbrain/internal/dbx"
	"github.com/dmitrijs2005/smartbrain/internal/logging"
	"github.com/dmitrijs2005/smartbrain/internal/server/config"
	"github.com/dmitrijs2005/smartbrain/internal/server/models"
	"github.com/dmitrijs2005/smartbrain/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/smartbrain/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	cost        int
	dummyHash   []byte
	now         func() time.Time
}

// NewAuthService builds an AuthService. It precomputes a hash of random bytes
// that sign-in compares against when the email is unknown, so both failure
// cases cost one bcrypt comparison.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) (*AuthService, error) {
	secret, err := shared.RandomBytes(32)
	if err != nil {
		return nil, fmt.Errorf("error generating dummy secret: %w", err)
	}

	dummy, err := bcrypt.GenerateFromPassword(secret, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error generating dummy hash: %w", err)
	}

	return &AuthService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "auth_service"),
		cost:        cfg.BcryptCost,
		dummyHash:   dummy,
		now:         time.Now,
	}, nil
}

// Register creates the credential and the profile for a new user in one
// transaction and returns the stored profile. Empty fields yield
// common.ErrorValidation before anything touches the store.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.Profile, error) {
	if blank(email) || blank(name) || blank(password) {
		return nil, common.ErrorValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var profile *models.Profile
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cred, err := s.repomanager.Credentials(tx).Create(ctx, &models.Credential{Email: email, Hash: string(hash)})
		if err != nil {
			return fmt.Errorf("error creating credential: %w", err)
		}

		profile, err = s.repomanager.Profiles(tx).Create(ctx, &models.Profile{
			Email:  cred.Email,
			Name:   name,
			Joined: s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// SignIn verifies the password for email and returns the matching profile.
//
// Every failure, whatever its cause, is reported as common.ErrorUnauthorized
// so callers cannot tell an unknown email from a wrong password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.Profile, error) {
	profile, err := s.signIn(ctx, email, password)
	if err != nil {
		s.logger.Info(ctx, "sign-in rejected", "reason", err.Error())
		return nil, common.ErrorUnauthorized
	}
	return profile, nil
}

func (s *AuthService) signIn(ctx context.Context, email, password string) (*models.Profile, error) {
	if blank(email) || blank(password) {
		s.burnComparison(password)
		return nil, common.ErrorValidation
	}

	cred, err := s.repomanager.Credentials(s.db).GetByEmail(ctx, email)
	if err != nil {
		s.burnComparison(password)
		return nil, fmt.Errorf("error looking up credential: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.Hash), []byte(password)); err != nil {
		return nil, fmt.Errorf("error comparing password: %w", err)
	}

	profile, err := s.repomanager.Profiles(s.db).GetByEmail(ctx, cred.Email)
	if err != nil {
		return nil, fmt.Errorf("error fetching profile: %w", err)
	}

	return profile, nil
}

func (s *AuthService) burnComparison(password string) {
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
