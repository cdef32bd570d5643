package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/user"
	"github.com/Synapse-Social-Media/web-sub000/pkg/apperror"
	"github.com/Synapse-Social-Media/web-sub000/pkg/auth"
	"github.com/Synapse-Social-Media/web-sub000/pkg/logger"
)

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) SearchByText(context.Context, string, user.SearchFilters, int) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	for i := range f.users {
		if strings.EqualFold(f.users[i].Username, username) {
			return &f.users[i], nil
		}
	}
	return nil, user.ErrUserNotFound
}

func newLoginFixture(t *testing.T, banned bool) (*LoginUseCase, *auth.JWTService, uuid.UUID) {
	t.Helper()

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	u := user.User{
		ID:           uuid.New(),
		Username:     "gopher",
		PasswordHash: hash,
		Banned:       banned,
	}

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	uc := NewLoginUseCase(&fakeUserRepo{users: []user.User{u}}, jwtSvc, logger.NewNop())
	return uc, jwtSvc, u.ID
}

func TestLogin_Success(t *testing.T) {
	uc, jwtSvc, userID := newLoginFixture(t, false)

	out, err := uc.Execute(context.Background(), LoginInput{Username: "gopher", Password: "correct-horse"})
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, _ := newLoginFixture(t, false)

	_, err := uc.Execute(context.Background(), LoginInput{Username: "gopher", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLogin_UnknownUsername(t *testing.T) {
	uc, _, _ := newLoginFixture(t, false)

	_, err := uc.Execute(context.Background(), LoginInput{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLogin_BannedAccount(t *testing.T) {
	uc, _, _ := newLoginFixture(t, true)

	_, err := uc.Execute(context.Background(), LoginInput{Username: "gopher", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperror.ErrPermission)
}
