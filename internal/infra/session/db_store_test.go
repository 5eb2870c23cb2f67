package session

import (
	"context"
	"testing"
	"time"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionRepository is an in-memory SessionRepository for tests.
type fakeSessionRepository struct {
	records map[string]*entity.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{records: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepository) CreateSession(_ context.Context, session *entity.Session) error {
	f.records[session.Token] = session

	return nil
}

func (f *fakeSessionRepository) FindSessionByToken(_ context.Context, token string) (*entity.Session, error) {
	record, ok := f.records[token]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}

	return record, nil
}

func (f *fakeSessionRepository) DeleteSessionByToken(_ context.Context, token string) error {
	if _, ok := f.records[token]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(f.records, token)

	return nil
}

func (f *fakeSessionRepository) DeleteSessionsByUserID(_ context.Context, userID uuid.UUID) error {
	for token, record := range f.records {
		if record.UserID == userID {
			delete(f.records, token)
		}
	}

	return nil
}

func (f *fakeSessionRepository) DeleteSessionsCreatedBefore(_ context.Context, cutoff time.Time) (int, error) {
	removed := 0
	for token, record := range f.records {
		if record.CreatedAt.Before(cutoff) {
			delete(f.records, token)
			removed++
		}
	}

	return removed, nil
}

func TestDBStore_CreateResolveRevoke(t *testing.T) {
	repo := newFakeSessionRepository()
	store := NewDBStore(repo, 0)
	ctx := context.Background()
	userID := uuid.NewString()

	token, err := store.Create(ctx, userID)
	require.NoError(t, err)
	require.Contains(t, repo.records, token)

	resolved, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)

	removed, err := store.Revoke(ctx, token)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Revoke(ctx, token)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDBStore_CreateRejectsMalformedUserID(t *testing.T) {
	store := NewDBStore(newFakeSessionRepository(), 0)

	_, err := store.Create(context.Background(), "nope")
	assert.ErrorIs(t, err, service.ErrMalformedUserID)
}

func TestDBStore_LazyExpiryLeavesRows(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	repo := newFakeSessionRepository()
	store := newDBStore(repo, 60*time.Second, clock.Now)
	ctx := context.Background()

	token, err := store.Create(ctx, uuid.NewString())
	require.NoError(t, err)

	clock.Advance(60 * time.Second)
	_, err = store.Resolve(ctx, token)
	require.NoError(t, err, "exactly at the TTL the session is still live")

	clock.Advance(1 * time.Second)
	_, err = store.Resolve(ctx, token)
	assert.ErrorIs(t, err, service.ErrSessionInvalid)

	// The row survives the failed resolve until purged.
	assert.Contains(t, repo.records, token)

	removed, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NotContains(t, repo.records, token)
}

func TestDBStore_ResolveUnknownToken(t *testing.T) {
	store := NewDBStore(newFakeSessionRepository(), 0)

	_, err := store.Resolve(context.Background(), "missing")
	assert.ErrorIs(t, err, service.ErrSessionInvalid)
}
