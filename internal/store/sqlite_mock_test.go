package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Error paths exercised against a mocked connection; the happy paths run on
// real SQLite in sqlite_test.go.

func TestSQLiteStore_ListDatasets_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, columns").
		WillReturnError(errors.New("disk I/O error"))

	s := NewWithDB(db)
	_, err = s.ListDatasets(context.Background())
	assert.ErrorContains(t, err, "failed to list datasets")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_GetDataset_CorruptColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, columns FROM datasets").
		WithArgs("ds-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "columns"}).
			AddRow("ds-1", "sales", "{not json"))

	s := NewWithDB(db)
	_, err = s.GetDataset(context.Background(), "ds-1")
	assert.ErrorContains(t, err, "failed to decode columns")
}

func TestSQLiteStore_DeleteDataset_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM datasets").
		WithArgs("ds-1").
		WillReturnError(errors.New("database is locked"))

	s := NewWithDB(db)
	err = s.DeleteDataset(context.Background(), "ds-1")
	assert.ErrorContains(t, err, "failed to delete dataset")
}
