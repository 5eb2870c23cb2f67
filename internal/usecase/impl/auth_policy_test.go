package impl

import (
	"context"
	"testing"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateFunc adapts a function to service.PathGate.
type gateFunc func(path string) bool

func (f gateFunc) RequiresAuth(path string) bool {
	return f(path)
}

// fakeAuthenticator returns canned credential and identity results.
type fakeAuthenticator struct {
	credential   string
	credentialOK bool
	user         *entity.User
	resolveErr   error
}

func (f *fakeAuthenticator) Credential(service.Request) (string, bool) {
	return f.credential, f.credentialOK
}

func (f *fakeAuthenticator) ResolveIdentity(context.Context, string) (*entity.User, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}

	return f.user, nil
}

type emptyRequest struct{}

func (emptyRequest) Header(string) (string, bool) { return "", false }
func (emptyRequest) Cookie(string) (string, bool) { return "", false }

func newTestPolicy(gate service.PathGate, authenticator service.Authenticator) usecase.AuthPolicy {
	return NewAuthPolicy(AuthPolicyParams{
		Gate:          gate,
		Authenticator: authenticator,
		Logger:        discardLogger(),
	})
}

func TestAuthPolicy_Authorize_NotRequired(t *testing.T) {
	open := gateFunc(func(string) bool { return false })
	// The authenticator must not be consulted at all for excluded paths.
	policy := newTestPolicy(open, &fakeAuthenticator{credentialOK: false})

	verdict := policy.Authorize(context.Background(), "/api/v1/status/", emptyRequest{})

	assert.Equal(t, usecase.VerdictNotRequired, verdict.Status)
	assert.Nil(t, verdict.User)
}

func TestAuthPolicy_Authorize_MissingCredentials(t *testing.T) {
	closed := gateFunc(func(string) bool { return true })
	policy := newTestPolicy(closed, &fakeAuthenticator{credentialOK: false})

	verdict := policy.Authorize(context.Background(), "/api/v1/profile/", emptyRequest{})

	assert.Equal(t, usecase.VerdictMissingCredentials, verdict.Status)
	assert.Nil(t, verdict.User)
}

func TestAuthPolicy_Authorize_Forbidden(t *testing.T) {
	closed := gateFunc(func(string) bool { return true })
	policy := newTestPolicy(closed, &fakeAuthenticator{
		credential:   "Basic broken",
		credentialOK: true,
		resolveErr:   service.ErrInvalidIdentity,
	})

	verdict := policy.Authorize(context.Background(), "/api/v1/profile/", emptyRequest{})

	assert.Equal(t, usecase.VerdictForbidden, verdict.Status)
	assert.Nil(t, verdict.User)
}

func TestAuthPolicy_Authorize_InfrastructureFaultIsForbidden(t *testing.T) {
	closed := gateFunc(func(string) bool { return true })
	policy := newTestPolicy(closed, &fakeAuthenticator{
		credential:   "Basic whatever",
		credentialOK: true,
		resolveErr:   errors.New("directory unreachable"),
	})

	verdict := policy.Authorize(context.Background(), "/api/v1/profile/", emptyRequest{})

	assert.Equal(t, usecase.VerdictForbidden, verdict.Status)
}

func TestAuthPolicy_Authorize_Authenticated(t *testing.T) {
	closed := gateFunc(func(string) bool { return true })
	user := &entity.User{ID: uuid.New(), Email: "alice@mail.com"}
	policy := newTestPolicy(closed, &fakeAuthenticator{
		credential:   "Basic good",
		credentialOK: true,
		user:         user,
	})

	verdict := policy.Authorize(context.Background(), "/api/v1/profile/", emptyRequest{})

	require.Equal(t, usecase.VerdictAuthenticated, verdict.Status)
	require.NotNil(t, verdict.User)
	assert.Equal(t, user.ID, verdict.User.ID)
}
