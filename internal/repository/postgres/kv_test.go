package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestKVRepo_Get(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedValue string
		expectedFound bool
		expectedError bool
	}{
		{
			name:          "value found",
			mockRows:      sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":1}]`),
			expectedValue: `[{"id":1}]`,
			expectedFound: true,
		},
		{
			name:          "key missing",
			mockError:     sql.ErrNoRows,
			expectedFound: false,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewKVRepo(db)

			query := "SELECT value FROM kv_store WHERE user_id = \\$1 AND key = \\$2"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(int64(123), "englishWords").WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(int64(123), "englishWords").WillReturnRows(tt.mockRows)
			}

			value, found, err := repo.Get(context.Background(), 123, "englishWords")

			if tt.expectedError {
				assert.Error(t, err)
				assert.False(t, found)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedFound, found)
				assert.Equal(t, tt.expectedValue, value)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestKVRepo_Set(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewKVRepo(db)

	mock.ExpectExec("INSERT INTO kv_store .* ON CONFLICT \\(user_id, key\\)").
		WithArgs(int64(123), "gameStats", `{"totalQuestions":1}`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Set(context.Background(), 123, "gameStats", `{"totalQuestions":1}`)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVRepo_Set_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewKVRepo(db)

	mock.ExpectExec("INSERT INTO kv_store").
		WithArgs(int64(123), "theme", "dark").
		WillReturnError(fmt.Errorf("db error"))

	err = repo.Set(context.Background(), 123, "theme", "dark")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "theme")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewKVRepo(db)

	mock.ExpectExec("DELETE FROM kv_store WHERE user_id = \\$1 AND key = \\$2").
		WithArgs(int64(123), "theme").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), 123, "theme")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
