package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/promptpix/promptpix/internal/auth"
	"github.com/promptpix/promptpix/internal/config"
	"github.com/promptpix/promptpix/internal/repository"
)

func newAuthFixture(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{InitialCredits: 5}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(cfg, repository.NewUserRepository(db), tokens), mock
}

func TestRegisterSeedsInitialCredits(t *testing.T) {
	svc, mock := newAuthFixture(t)

	mock.ExpectQuery("SELECT .* FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "credit_balance", "generation_count", "created_at", "updated_at"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(sqlmock.AnyArg(), "Alice", "alice@example.com", sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, token, err := svc.Register(context.Background(), "Alice", "Alice@Example.com", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, 5, user.CreditBalance)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, token)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, mock := newAuthFixture(t)

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "credit_balance", "generation_count", "created_at", "updated_at"}).
			AddRow("u1", "Alice", "alice@example.com", "hash", 5, 0, now, now))

	_, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "hunter22")
	require.ErrorIs(t, err, ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginVerifiesPassword(t *testing.T) {
	svc, mock := newAuthFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "credit_balance", "generation_count", "created_at", "updated_at"}).
			AddRow("u1", "Alice", "alice@example.com", string(hash), 5, 0, now, now)
	}

	mock.ExpectQuery("SELECT .* FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(rows())

	user, token, err := svc.Login(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NotEmpty(t, token)

	mock.ExpectQuery("SELECT .* FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(rows())

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, mock := newAuthFixture(t)

	mock.ExpectQuery("SELECT .* FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "credit_balance", "generation_count", "created_at", "updated_at"}))

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
