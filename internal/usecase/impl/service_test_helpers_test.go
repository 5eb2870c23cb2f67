package impl

import (
	"context"
	"io"
	"log/slog"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepository is an in-memory UserRepository for tests.
type fakeUserRepository struct {
	usersByEmail map[string]*entity.User
	usersByID    map[uuid.UUID]*entity.User
	failWith     error
}

func newFakeUserRepository(users ...*entity.User) *fakeUserRepository {
	repo := &fakeUserRepository{
		usersByEmail: make(map[string]*entity.User),
		usersByID:    make(map[uuid.UUID]*entity.User),
	}
	for _, user := range users {
		repo.usersByEmail[user.Email] = user
		repo.usersByID[user.ID] = user
	}

	return repo
}

func (f *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if user, ok := f.usersByID[id]; ok {
		return user, nil
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if user, ok := f.usersByEmail[email]; ok {
		return user, nil
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepository) FindByResetToken(_ context.Context, token string) (*entity.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, user := range f.usersByID {
		if user.ResetToken != nil && *user.ResetToken == token {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.usersByEmail[user.Email] = user
	f.usersByID[user.ID] = user

	return nil
}

func (f *fakeUserRepository) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	user, ok := f.usersByID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = hash

	return nil
}

func (f *fakeUserRepository) SetResetToken(_ context.Context, id uuid.UUID, token *string) error {
	user, ok := f.usersByID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.ResetToken = token

	return nil
}

// fakeTxManager runs the callback against a fixed factory, no transactions.
type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f.factory)
}

type fakeRepoFactory struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
}

func (f *fakeRepoFactory) NewUserRepository() repository.UserRepository {
	return f.users
}

func (f *fakeRepoFactory) NewSessionRepository() repository.SessionRepository {
	return f.sessions
}

// fakeSessionStore maps tokens to user IDs for tests.
type fakeSessionStore struct {
	sessions map[string]string
	failWith error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]string)}
}

func (f *fakeSessionStore) Create(_ context.Context, userID string) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	if _, err := uuid.Parse(userID); err != nil {
		return "", service.ErrMalformedUserID
	}
	token := uuid.NewString()
	f.sessions[token] = userID

	return token, nil
}

func (f *fakeSessionStore) Resolve(_ context.Context, token string) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	userID, ok := f.sessions[token]
	if !ok {
		return "", service.ErrSessionInvalid
	}

	return userID, nil
}

func (f *fakeSessionStore) Revoke(_ context.Context, token string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	if _, ok := f.sessions[token]; !ok {
		return false, nil
	}
	delete(f.sessions, token)

	return true, nil
}

// fakeHasher marks hashes with a prefix instead of real hashing.
type fakeHasher struct {
	failWith error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}

	return "hashed:" + password, nil
}

func (f *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}
