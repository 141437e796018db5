package user

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository for service tests.
type memRepo struct {
	mu    sync.Mutex
	users map[string]*User
	seq   int
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*User{}}
}

func (r *memRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *memRepo) List(_ context.Context, _ Filter) ([]*User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *memRepo) Update(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

// fakeHasher avoids paying bcrypt cost in every test.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return fmt.Errorf("mismatch")
	}
	return nil
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, fakeHasher{}), repo
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Username: "  ", Password: "longenough"})
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Create(ctx, CreateRequest{Username: "alice", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Create(ctx, CreateRequest{Username: "alice", Password: "longenough", Role: "superuser"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCreateDefaultsAndNormalization(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Create(context.Background(), CreateRequest{
		Username:   "  Alice  ",
		Password:   "longenough",
		Name:       "Alice Chen",
		Department: "Engineering",
		Email:      "alice@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "longenough", u.PasswordHash)
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Username: "bob", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Username: "BOB", Password: "longenough"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{Username: "carol", Password: "longenough"})
	require.NoError(t, err)

	u, err := svc.Login(ctx, "Carol", "longenough")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.NotNil(t, u.LastLoginAt)

	_, err = svc.Login(ctx, "carol", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "longenough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	inactive := false
	_, err = svc.Update(ctx, created.ID, UpdateRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "carol", "longenough")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestSeedAdmin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx, "admin123"))

	admin, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	// Second run is a no-op even with a different password.
	require.NoError(t, svc.SeedAdmin(ctx, "otherpassword"))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
