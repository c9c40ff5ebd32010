package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/smartbrain/internal/common"
	"github.com/dmitrijs2005/smartbrain/internal/dbx"
	"github.com/dmitrijs2005/smartbrain/internal/server/models"
	"github.com/dmitrijs2005/smartbrain/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/smartbrain/internal/server/repositories/profiles"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// memStore backs both fake repositories with maps so sign-in can observe
// what registration wrote.
type memStore struct {
	mu       sync.Mutex
	creds    map[string]*models.Credential
	profiles map[int64]*models.Profile
	nextID   int64
	calls    int

	credCreateErr    error
	credGetErr       error
	profileCreateErr error
	profileGetErr    error
	incrementErr     error
}

func newMemStore() *memStore {
	return &memStore{
		creds:    map[string]*models.Credential{},
		profiles: map[int64]*models.Profile{},
	}
}

type fakeCredentialsRepo struct{ s *memStore }

func (f *fakeCredentialsRepo) Create(_ context.Context, c *models.Credential) (*models.Credential, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.calls++
	if f.s.credCreateErr != nil {
		return nil, f.s.credCreateErr
	}
	if _, ok := f.s.creds[c.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.s.nextID++
	out := &models.Credential{ID: f.s.nextID, Email: c.Email, Hash: c.Hash}
	f.s.creds[c.Email] = out
	return out, nil
}

func (f *fakeCredentialsRepo) GetByEmail(_ context.Context, email string) (*models.Credential, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.calls++
	if f.s.credGetErr != nil {
		return nil, f.s.credGetErr
	}
	c, ok := f.s.creds[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

type fakeProfilesRepo struct{ s *memStore }

func (f *fakeProfilesRepo) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.calls++
	if f.s.profileCreateErr != nil {
		return nil, f.s.profileCreateErr
	}
	f.s.nextID++
	out := *p
	out.ID = f.s.nextID
	f.s.profiles[out.ID] = &out
	cp := out
	return &cp, nil
}

func (f *fakeProfilesRepo) GetByID(_ context.Context, id int64) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.calls++
	if f.s.profileGetErr != nil {
		return nil, f.s.profileGetErr
	}
	p, ok := f.s.profiles[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfilesRepo) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.calls++
	if f.s.profileGetErr != nil {
		return nil, f.s.profileGetErr
	}
	for _, p := range f.s.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeProfilesRepo) IncrementEntries(_ context.Context, id int64) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.calls++
	if f.s.incrementErr != nil {
		return 0, f.s.incrementErr
	}
	p, ok := f.s.profiles[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	p.Entries++
	return p.Entries, nil
}

type fakeRepoManager struct {
	s *memStore
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Credentials(dbx.DBTX) credentials.Repository {
	return &fakeCredentialsRepo{s: m.s}
}

func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository {
	return &fakeProfilesRepo{s: m.s}
}

var errBoom = errors.New("boom")
