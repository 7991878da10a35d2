package auth_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicedesk/invoicedesk-api/internal/application/auth"
	"github.com/invoicedesk/invoicedesk-api/internal/application/dto"
	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
)

// fakeUserRepo keeps users in a map. lookupErr, when set, is returned by the
// username/email lookups to simulate a failing database.
type fakeUserRepo struct {
	repository.UserRepository
	mu        sync.Mutex
	users     map[string]entity.User
	lookupErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]entity.User)}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, u := range r.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(id string, at time.Time) error { return nil }

func newAuthUseCase(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret: "test-secret", ExpMinutes: 60, Issuer: "invoicedesk-test",
	})
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "s3cret-pass",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo)

	created, err := uc.Register(registerRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleRegular, created.Role)
	assert.True(t, created.Active)

	out, err := uc.Login(dto.LoginRequest{Username: "asha", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, created.ID, out.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo)
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "asha", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo)
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	in := registerRequest()
	in.Email = "other@example.com"
	_, err = uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterPropagatesLookupError(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo)

	dbErr := errors.New("connection reset")
	repo.lookupErr = dbErr

	_, err := uc.Register(registerRequest())
	assert.ErrorIs(t, err, dbErr)
	assert.Empty(t, repo.users, "user must not be created when the duplicate check fails")
}

func TestUpdateUserPropagatesLookupError(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo)
	created, err := uc.Register(registerRequest())
	require.NoError(t, err)

	dbErr := errors.New("connection reset")
	repo.lookupErr = dbErr

	email := "new@example.com"
	_, err = uc.UpdateUser(created.ID, dto.UpdateUserRequest{Email: &email}, false)
	assert.ErrorIs(t, err, dbErr)
}
