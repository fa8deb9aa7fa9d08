package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashionhub/auth-service/internal/domain"
)

func newMockRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewUserRepo(db), mock
}

func userRows(users ...domain.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "role", "email_verified",
		"email_verified_at", "password_changed_at", "created_at",
	})
	for _, u := range users {
		rows.AddRow(
			u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.EmailVerified,
			nullableTime(u.EmailVerifiedAt), nullableTime(u.PasswordChangedAt), nullableTime(u.CreatedAt),
		)
	}
	return rows
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func TestUserRepo_GetByEmail_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM users\s+WHERE email = \$1`).
		WithArgs("ada@shop.com").
		WillReturnRows(userRows(domain.User{
			ID: "u1", Name: "Ada", Email: "ada@shop.com", PasswordHash: "h",
			Role: "user", EmailVerified: true, EmailVerifiedAt: now, CreatedAt: now,
		}))

	u, err := repo.GetByEmail(context.Background(), "  ADA@shop.com ")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.True(t, u.EmailVerified)
	assert.True(t, u.PasswordChangedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM users\s+WHERE email = \$1`).
		WithArgs("nobody@shop.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@shop.com")
	assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM users\s+WHERE id = \$1`).
		WithArgs("u-404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "u-404")
	assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
}

func TestUserRepo_Create_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u1", "Ada", "ada@shop.com", "h", "user", false).
		WillReturnRows(userRows(domain.User{
			ID: "u1", Name: "Ada", Email: "ada@shop.com", PasswordHash: "h",
			Role: "user", CreatedAt: time.Now(),
		}))

	u, err := repo.Create(context.Background(), domain.User{
		ID: "u1", Name: "Ada", Email: "ADA@shop.com", PasswordHash: "h", Role: "user",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@shop.com", u.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), domain.User{
		ID: "u1", Email: "ada@shop.com", PasswordHash: "h",
	})
	assert.True(t, domain.Is(err, "email_already_exists"), "got %v", err)
}

func TestUserRepo_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "u1"))

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("u-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "u-404")
	assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
}

func TestUserRepo_UpdatePassword_ClearsResetToken(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE users\s+SET password_hash = \$2,\s+password_changed_at = NOW\(\),\s+reset_token_hash = NULL`).
		WithArgs("u1", "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), "u1", "new-hash"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdatePassword_MissingUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE users`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), "u-404", "h")
	assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
}

func TestUserRepo_SetEmailVerified_ClearsVerifyToken(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE users\s+SET email_verified = TRUE,\s+email_verified_at = NOW\(\),\s+verify_token_hash = NULL`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetEmailVerified(context.Background(), "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_SetTokens(t *testing.T) {
	repo, mock := newMockRepo(t)
	exp := time.Now().Add(time.Hour)

	mock.ExpectExec(`UPDATE users\s+SET verify_token_hash = \$2`).
		WithArgs("u1", "vh", exp).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetVerifyToken(context.Background(), "u1", "vh", exp))

	mock.ExpectExec(`UPDATE users\s+SET reset_token_hash = \$2`).
		WithArgs("u1", "rh", exp).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetResetToken(context.Background(), "u1", "rh", exp))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByTokenHash_ExpiryEnforcedInQuery(t *testing.T) {
	repo, mock := newMockRepo(t)

	// the cutoff lives in the SQL, not in Go
	mock.ExpectQuery(`WHERE verify_token_hash = \$1\s+AND verify_token_expires_at > NOW\(\)`).
		WithArgs("vh").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByVerifyTokenHash(context.Background(), "vh")
	assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)

	mock.ExpectQuery(`WHERE reset_token_hash = \$1\s+AND reset_token_expires_at > NOW\(\)`).
		WithArgs("rh").
		WillReturnRows(userRows(domain.User{ID: "u1", Email: "a@b.com", PasswordHash: "h", Role: "user"}))

	u, err := repo.GetByResetTokenHash(context.Background(), "rh")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM users\s+ORDER BY created_at`).
		WillReturnRows(userRows(
			domain.User{ID: "u1", Email: "a@b.com", PasswordHash: "h", Role: "user"},
			domain.User{ID: "u2", Email: "c@d.com", PasswordHash: "h", Role: "admin"},
		))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[1].Role)
}
