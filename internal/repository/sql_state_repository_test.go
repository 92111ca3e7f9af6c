package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

func newStateRepoMock(t *testing.T) (*SQLStateRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { _ = sqlxDB.Close() })
	repo := NewSQLStateRepository(sqlxDB)
	repo.now = func() time.Time { return time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC) }
	return repo, mock
}

func TestSQLStateRepositoryGet(t *testing.T) {
	repo, mock := newStateRepoMock(t)
	rows := sqlmock.NewRows([]string{"key", "value", "updated_at"}).
		AddRow("auth-storage", []byte(`{"state":{"token":"abc"},"version":0}`), time.Now())
	mock.ExpectQuery("SELECT key, value, updated_at FROM client_state").
		WithArgs("auth-storage").
		WillReturnRows(rows)

	var blob struct {
		State struct {
			Token string `json:"token"`
		} `json:"state"`
	}
	require.NoError(t, repo.Get(context.Background(), "auth-storage", &blob))
	assert.Equal(t, "abc", blob.State.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStateRepositoryGetMiss(t *testing.T) {
	repo, mock := newStateRepoMock(t)
	mock.ExpectQuery("SELECT key, value, updated_at FROM client_state").
		WithArgs("help-storage").
		WillReturnError(sql.ErrNoRows)

	var dest map[string]interface{}
	err := repo.Get(context.Background(), "help-storage", &dest)
	assert.True(t, errors.Is(err, appErrors.ErrStateMiss))
}

func TestSQLStateRepositorySet(t *testing.T) {
	repo, mock := newStateRepoMock(t)
	mock.ExpectExec("INSERT INTO client_state").
		WithArgs("help-storage", []byte(`{"faqs":[]}`), time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Set(context.Background(), "help-storage", map[string]interface{}{"faqs": []string{}}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStateRepositoryDelete(t *testing.T) {
	repo, mock := newStateRepoMock(t)
	mock.ExpectExec("DELETE FROM client_state").
		WithArgs("auth-storage").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "auth-storage"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
