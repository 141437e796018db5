package account

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	accounts map[int64]*Account
	seq      int64
}

func newMemRepo() *memRepo {
	return &memRepo{accounts: map[int64]*Account{}}
}

func (r *memRepo) sorted(activeOnly bool) []*Account {
	var out []*Account
	for _, a := range r.accounts {
		if activeOnly && !a.IsActive {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memRepo) ListActive(_ context.Context) ([]*Account, error) {
	return r.sorted(true), nil
}

func (r *memRepo) List(_ context.Context) ([]*Account, error) {
	return r.sorted(false), nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) Create(_ context.Context, a *Account) error {
	r.seq++
	a.ID = r.seq
	a.CreatedAt = time.Now()
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *memRepo) Update(_ context.Context, a *Account) error {
	if _, ok := r.accounts[a.ID]; !ok {
		return ErrNotFound
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *memRepo) Count(_ context.Context) (int, error) {
	return len(r.accounts), nil
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, slog.Default()), repo
}

func TestSeedFillsEmptyPool(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))

	accounts, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, SeedCount)

	assert.Equal(t, "Zoom Account 1", accounts[0].Name)
	assert.Equal(t, "zoom1@company.com", accounts[0].Login)
	assert.Equal(t, "Zoom Account 20", accounts[SeedCount-1].Name)

	// IDs ascend so allocation scans the pool in a stable order.
	for i, a := range accounts {
		assert.Equal(t, int64(i+1), a.ID)
	}

	// Seeding again must not duplicate the pool.
	require.NoError(t, svc.Seed(ctx))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedCount, n)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestUpdateDeactivation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateRequest{Name: "Spare", Login: "spare@company.com", Secret: "s"})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(ctx, a.ID, UpdateRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}
