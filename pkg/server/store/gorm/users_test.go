package gorm

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arthurv/ticketd/pkg/model"
	"github.com/arthurv/ticketd/pkg/server/store"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock, sqlDB
}

func userRows(users ...model.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "handle", "password_hash", "role"})
	for _, u := range users {
		rows.AddRow(u.ID, u.Handle, u.PasswordHash, u.Role.String())
	}
	return rows
}

func TestUsersFindByHandle(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE handle = \$1`).
		WithArgs("alice").
		WillReturnRows(userRows(model.User{
			ID: 7, Handle: "alice", PasswordHash: "$2a$04$hash", Role: model.RoleAdministrator,
		}))

	user, err := NewUsers(db).FindByHandle("alice")
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "alice", user.Handle)
	assert.Equal(t, model.RoleAdministrator, user.Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersFindByHandleNotFound(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE handle = \$1`).
		WithArgs("ghost").
		WillReturnRows(userRows())

	_, err := NewUsers(db).FindByHandle("ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersCreate(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	user := &model.User{Handle: "bob", PasswordHash: "$2a$04$hash", Role: model.RoleStandard}
	require.NoError(t, NewUsers(db).Create(user))
	assert.Equal(t, uint(3), user.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersCreateDuplicateHandle(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	user := &model.User{Handle: "bob", PasswordHash: "$2a$04$hash", Role: model.RoleStandard}
	err := NewUsers(db).Create(user)
	assert.ErrorIs(t, err, store.ErrDuplicateHandle)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersSetRole(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "role"=\$1 WHERE handle = \$2`).
		WithArgs("administrator", "bob").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewUsers(db).SetRole("bob", model.RoleAdministrator))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersSetRoleUnknownHandle(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "role"=\$1 WHERE handle = \$2`).
		WithArgs("standard", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewUsers(db).SetRole("ghost", model.RoleStandard)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersDelete(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "users" WHERE "users"."id" = \$1`).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewUsers(db).Delete(9))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersDeleteNotFound(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "users" WHERE "users"."id" = \$1`).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewUsers(db).Delete(9)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_handle" (SQLSTATE 23505)`)))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(assert.AnError))
}
