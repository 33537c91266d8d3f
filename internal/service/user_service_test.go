package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marahateeq/user-api/internal/domain"
	"github.com/marahateeq/user-api/internal/repository"
)

type fakeUserRepo struct {
	users       map[int64]*domain.User
	nextID      int64
	lastUpdate  []repository.FieldUpdate
	updateCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, repository.ErrConflict
		}
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return user.ID, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id int64, fields []repository.FieldUpdate) error {
	f.updateCalls++
	f.lastUpdate = fields
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func TestCreateRequiresUsernameAndEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), "", "a@x.com", "")
	assert.ErrorIs(t, err, ErrMissingRequiredFields)

	_, err = svc.Create(context.Background(), "alice", "", "")
	assert.ErrorIs(t, err, ErrMissingRequiredFields)
}

func TestCreateAssignsID(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	user, err := svc.Create(context.Background(), "alice", "a@x.com", "Alice A")
	require.NoError(t, err)
	assert.Positive(t, user.ID)
	assert.Equal(t, "Alice A", user.FullName)
}

func TestCreatePropagatesConflict(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), "alice", "a@x.com", "")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "alice", "other@x.com", "")
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestUpdateRejectsEmptySet(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	err := svc.Update(context.Background(), 1, UserUpdate{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
	assert.Zero(t, repo.updateCalls, "repository must not be touched for an empty update")
}

func TestUpdateChecksExistenceFirst(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	name := "Nobody"
	err := svc.Update(context.Background(), 42, UserUpdate{FullName: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateBuildsAllowListedFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Create(context.Background(), "alice", "a@x.com", "")
	require.NoError(t, err)

	username := "alice2"
	fullName := "Alice A"
	err = svc.Update(context.Background(), user.ID, UserUpdate{Username: &username, FullName: &fullName})
	require.NoError(t, err)

	require.Len(t, repo.lastUpdate, 2)
	assert.Equal(t, repository.FieldUpdate{Name: "username", Value: "alice2"}, repo.lastUpdate[0])
	assert.Equal(t, repository.FieldUpdate{Name: "full_name", Value: "Alice A"}, repo.lastUpdate[1])
}

func TestUpdateAllowsEmptyStringValues(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Create(context.Background(), "alice", "a@x.com", "Alice A")
	require.NoError(t, err)

	empty := ""
	err = svc.Update(context.Background(), user.ID, UserUpdate{FullName: &empty})
	require.NoError(t, err)
	require.Len(t, repo.lastUpdate, 1)
	assert.Equal(t, repository.FieldUpdate{Name: "full_name", Value: ""}, repo.lastUpdate[0])
}

func TestDeletePropagatesNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
