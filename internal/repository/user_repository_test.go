package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// openMockDB wires a sqlmock connection behind a GORM session so the
// generated SQL can be asserted without a live server.
func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "is_active"}).
		AddRow(1, "Anna", "anna@example.com", "hashed", true)
	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE email = (.+)").
		WillReturnRows(rows)

	user, err := repo.FindByEmail("anna@example.com")
	require.NoError(t, err)
	require.EqualValues(t, 1, user.ID)
	require.Equal(t, "anna@example.com", user.Email)
	require.True(t, user.IsActive)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE email = (.+)").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByEmail("nobody@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTokenRepository_FindByUserID(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewTokenRepository(db)

	rows := sqlmock.NewRows([]string{"id", "key", "user_id"}).
		AddRow(7, "abc123", 3)
	mock.ExpectQuery("SELECT (.+) FROM `auth_tokens` WHERE user_id = (.+)").
		WillReturnRows(rows)

	token, err := repo.FindByUserID(3)
	require.NoError(t, err)
	require.Equal(t, "abc123", token.Key)
	require.EqualValues(t, 3, token.UserID)

	require.NoError(t, mock.ExpectationsWereMet())
}
