package services

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/dbx"
	"github.com/dmitrijs2005/mtmt/internal/server/models"
	"github.com/dmitrijs2005/mtmt/internal/server/repositories/mentees"
	"github.com/dmitrijs2005/mtmt/internal/server/repositories/mentors"
	"github.com/dmitrijs2005/mtmt/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	mu        sync.Mutex
	byEmail   map[string]*models.User
	nextID    int64
	existsErr error
	createErr error
	getErr    error
	created   []*models.User
}

func newFakeUsersRepo(us ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byEmail: map[string]*models.User{}, nextID: 100}
	for _, u := range us {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	u.ID = f.nextID
	f.created = append(f.created, u)
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakeMentorsRepo struct {
	created []*models.Mentor
	err     error
}

func (f *fakeMentorsRepo) Create(ctx context.Context, m *models.Mentor) (*models.Mentor, error) {
	if f.err != nil {
		return nil, f.err
	}
	m.ID = int64(len(f.created) + 1)
	f.created = append(f.created, m)
	return m, nil
}

func (f *fakeMentorsRepo) GetByUserID(ctx context.Context, userID int64) (*models.Mentor, error) {
	for _, m := range f.created {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeMenteesRepo struct {
	created []*models.Mentee
	err     error
}

func (f *fakeMenteesRepo) Create(ctx context.Context, m *models.Mentee) (*models.Mentee, error) {
	if f.err != nil {
		return nil, f.err
	}
	m.ID = int64(len(f.created) + 1)
	f.created = append(f.created, m)
	return m, nil
}

func (f *fakeMenteesRepo) GetByUserID(ctx context.Context, userID int64) (*models.Mentee, error) {
	for _, m := range f.created {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	mr *fakeMentorsRepo
	me *fakeMenteesRepo
}

func newFakeRepoManager(us ...*models.User) *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(us...), mr: &fakeMentorsRepo{}, me: &fakeMenteesRepo{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Mentors(db dbx.DBTX) mentors.Repository       { return m.mr }
func (m *fakeRepoManager) Mentees(db dbx.DBTX) mentees.Repository       { return m.me }
