package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/smartbrain/internal/common"
	"github.com/dmitrijs2005/smartbrain/internal/logging"
	"github.com/dmitrijs2005/smartbrain/internal/server/models"
	"github.com/dmitrijs2005/smartbrain/internal/server/repositories/repomanager"
)

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "profile_service"),
	}
}

// GetProfile returns the profile with the given id, common.ErrorNotFound when
// there is none, or common.ErrorInternal on store failure.
func (s *ProfileService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	p, err := s.repomanager.Profiles(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "profile lookup failed", "id", id, "error", err)
		return nil, common.ErrorInternal
	}
	return p, nil
}

// IncrementEntries adds one to the entry counter of profile id and returns
// the new value.
func (s *ProfileService) IncrementEntries(ctx context.Context, id int64) (int64, error) {
	n, err := s.repomanager.Profiles(s.db).IncrementEntries(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrorNotFound
		}
		s.logger.Error(ctx, "entry increment failed", "id", id, "error", err)
		return 0, common.ErrorInternal
	}
	return n, nil
}
