package services

import (
	"context"
	"sync"
	"testing"

	"script9/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingUserRepo struct {
	mu    sync.Mutex
	calls int
	users map[string]models.User
	err   error
}

func (r *countingUserRepo) Upsert(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return r.err
	}
	if r.users == nil {
		r.users = make(map[string]models.User)
	}
	r.users[u.ID] = *u
	return nil
}

func TestSyncProfileWritesOncePerChange(t *testing.T) {
	repo := &countingUserRepo{}
	svc := NewUserService(UserServiceOptions{Users: repo})
	ctx := context.Background()
	profile := models.User{ID: "guest-1", Email: "g@example.com", Role: "guest"}

	require.NoError(t, svc.SyncProfile(ctx, profile))
	require.NoError(t, svc.SyncProfile(ctx, profile))
	assert.Equal(t, 1, repo.calls)

	profile.Role = "host"
	require.NoError(t, svc.SyncProfile(ctx, profile))
	assert.Equal(t, 2, repo.calls)
	assert.Equal(t, "host", repo.users["guest-1"].Role)

	require.NoError(t, svc.SyncProfile(ctx, models.User{}))
	assert.Equal(t, 2, repo.calls)
}

func TestSyncProfileRetriesAfterFailure(t *testing.T) {
	repo := &countingUserRepo{err: assert.AnError}
	svc := NewUserService(UserServiceOptions{Users: repo})
	profile := models.User{ID: "guest-1", Role: "guest"}

	assert.Error(t, svc.SyncProfile(context.Background(), profile))
	repo.err = nil
	require.NoError(t, svc.SyncProfile(context.Background(), profile))
	assert.Equal(t, 2, repo.calls)
}
