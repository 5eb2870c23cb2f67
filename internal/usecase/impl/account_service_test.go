package impl

import (
	"context"
	"testing"

	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountFixture struct {
	users    *fakeUserRepository
	sessions *fakeSessionStore
	hasher   *fakeHasher
	service  usecase.AccountUsecase
}

func newAccountFixture(users ...*entity.User) *accountFixture {
	userRepo := newFakeUserRepository(users...)
	sessions := newFakeSessionStore()
	hasher := &fakeHasher{}

	svc := NewAccountService(AccountServiceParams{
		TxManager: &fakeTxManager{factory: &fakeRepoFactory{users: userRepo}},
		UserRepo:  userRepo,
		Sessions:  sessions,
		Hasher:    hasher,
		Logger:    discardLogger(),
	})

	return &accountFixture{
		users:    userRepo,
		sessions: sessions,
		hasher:   hasher,
		service:  svc,
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fixture := newAccountFixture()

	output, err := fixture.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "bob@mail.com",
		Password: "pw",
	})

	require.NoError(t, err)
	assert.Equal(t, "bob@mail.com", output.User.Email)
	assert.Equal(t, "hashed:pw", output.User.PasswordHash)
	assert.NotEqual(t, uuid.Nil, output.User.ID)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	existing := &entity.User{ID: uuid.New(), Email: "bob@mail.com", PasswordHash: "hashed:pw"}
	fixture := newAccountFixture(existing)

	_, err := fixture.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "bob@mail.com",
		Password: "other",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestAccountService_Register_HashFailure(t *testing.T) {
	fixture := newAccountFixture()
	fixture.hasher.failWith = errors.New("entropy exhausted")

	_, err := fixture.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "bob@mail.com",
		Password: "pw",
	})

	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestAccountService_Login_Success(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "bob@mail.com", PasswordHash: "hashed:pw"}
	fixture := newAccountFixture(user)
	ctx := context.Background()

	output, err := fixture.service.Login(ctx, &usecase.LoginInput{Email: "bob@mail.com", Password: "pw"})

	require.NoError(t, err)
	require.NotEmpty(t, output.SessionToken)
	assert.Equal(t, user.ID, output.User.ID)

	resolved, err := fixture.sessions.Resolve(ctx, output.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resolved)
}

func TestAccountService_Login_Failures(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "bob@mail.com", PasswordHash: "hashed:pw"}

	tests := []struct {
		name  string
		input *usecase.LoginInput
	}{
		{name: "unknown email", input: &usecase.LoginInput{Email: "nobody@mail.com", Password: "pw"}},
		{name: "wrong password", input: &usecase.LoginInput{Email: "bob@mail.com", Password: "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newAccountFixture(user)

			_, err := fixture.service.Login(context.Background(), tt.input)

			assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		})
	}
}

func TestAccountService_LogoutRoundTrip(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "bob@mail.com", PasswordHash: "hashed:pw"}
	fixture := newAccountFixture(user)
	ctx := context.Background()

	output, err := fixture.service.Login(ctx, &usecase.LoginInput{Email: "bob@mail.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, fixture.service.Logout(ctx, output.SessionToken))

	// The token is gone; logging out again reports the missing session.
	err = fixture.service.Logout(ctx, output.SessionToken)
	assert.ErrorIs(t, err, domainerrors.ErrSessionNotFound)
}

func TestAccountService_Profile(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "bob@mail.com", PasswordHash: "hashed:pw"}
	fixture := newAccountFixture(user)
	ctx := context.Background()

	output, err := fixture.service.Login(ctx, &usecase.LoginInput{Email: "bob@mail.com", Password: "pw"})
	require.NoError(t, err)

	profile, err := fixture.service.Profile(ctx, output.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, "bob@mail.com", profile.Email)

	_, err = fixture.service.Profile(ctx, "unknown-token")
	assert.ErrorIs(t, err, domainerrors.ErrSessionNotFound)
}

func TestAccountService_Profile_UserVanished(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "bob@mail.com", PasswordHash: "hashed:pw"}
	fixture := newAccountFixture(user)
	ctx := context.Background()

	output, err := fixture.service.Login(ctx, &usecase.LoginInput{Email: "bob@mail.com", Password: "pw"})
	require.NoError(t, err)

	delete(fixture.users.usersByID, user.ID)
	delete(fixture.users.usersByEmail, user.Email)

	_, err = fixture.service.Profile(ctx, output.SessionToken)
	assert.ErrorIs(t, err, domainerrors.ErrSessionNotFound)
}

func TestAccountService_ResetPasswordToken(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "bob@mail.com", PasswordHash: "hashed:pw"}
	fixture := newAccountFixture(user)
	ctx := context.Background()

	output, err := fixture.service.ResetPasswordToken(ctx, "bob@mail.com")
	require.NoError(t, err)
	assert.Equal(t, "bob@mail.com", output.Email)
	_, err = uuid.Parse(output.ResetToken)
	require.NoError(t, err, "reset tokens are UUID text")

	require.NotNil(t, user.ResetToken)
	assert.Equal(t, output.ResetToken, *user.ResetToken)

	_, err = fixture.service.ResetPasswordToken(ctx, "nobody@mail.com")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAccountService_UpdatePassword(t *testing.T) {
	resetToken := uuid.NewString()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "bob@mail.com",
		PasswordHash: "hashed:old",
		ResetToken:   &resetToken,
	}
	fixture := newAccountFixture(user)
	ctx := context.Background()

	err := fixture.service.UpdatePassword(ctx, &usecase.UpdatePasswordInput{
		ResetToken:  resetToken,
		NewPassword: "new-pw",
	})

	require.NoError(t, err)
	assert.Equal(t, "hashed:new-pw", user.PasswordHash)
	assert.Nil(t, user.ResetToken, "consumed token is cleared")

	// The consumed token cannot be replayed.
	err = fixture.service.UpdatePassword(ctx, &usecase.UpdatePasswordInput{
		ResetToken:  resetToken,
		NewPassword: "again",
	})
	assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
}

func TestAccountService_UpdatePassword_BogusToken(t *testing.T) {
	fixture := newAccountFixture()

	err := fixture.service.UpdatePassword(context.Background(), &usecase.UpdatePasswordInput{
		ResetToken:  "bogus",
		NewPassword: "pw",
	})

	assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
}
