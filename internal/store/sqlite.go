package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/SreeTarak2/datavisuals/internal/dataset"
	"github.com/SreeTarak2/datavisuals/internal/drill"
)

// SQLiteStore implements Store on a SQLite database file (or ":memory:").
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and runs migrations.
func Open(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// NewWithDB wraps an existing connection without running migrations.
// Used by tests that manage the schema themselves.
func NewWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveDataset inserts or replaces ds and all its rows in one transaction.
// A dataset without an ID gets a fresh UUID.
func (s *SQLiteStore) SaveDataset(ctx context.Context, ds *dataset.Dataset) error {
	if ds.ID == "" {
		ds.ID = uuid.NewString()
	}

	columns, err := json.Marshal(ds.Columns)
	if err != nil {
		return fmt.Errorf("failed to encode columns: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM dataset_rows WHERE dataset_id = ?`, ds.ID); err != nil {
		return fmt.Errorf("failed to clear rows: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO datasets (id, name, columns, row_count, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name,
		   columns = excluded.columns, row_count = excluded.row_count`,
		ds.ID, ds.Name, string(columns), len(ds.Rows),
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	insert, err := tx.PrepareContext(ctx,
		`INSERT INTO dataset_rows (dataset_id, seq, data) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer insert.Close()

	for i, row := range ds.Rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i, err)
		}
		if _, err := insert.ExecContext(ctx, ds.ID, i, string(data)); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetDataset loads a dataset and its rows in insertion order.
func (s *SQLiteStore) GetDataset(ctx context.Context, id string) (*dataset.Dataset, error) {
	var (
		ds      dataset.Dataset
		columns string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, columns FROM datasets WHERE id = ?`, id).
		Scan(&ds.ID, &ds.Name, &columns)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("dataset %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	if err := json.Unmarshal([]byte(columns), &ds.Columns); err != nil {
		return nil, fmt.Errorf("failed to decode columns: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM dataset_rows WHERE dataset_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var row dataset.Row
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			return nil, fmt.Errorf("failed to decode row: %w", err)
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return &ds, nil
}

// ListDatasets returns metadata for every stored dataset, newest first.
func (s *SQLiteStore) ListDatasets(ctx context.Context) ([]DatasetInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, columns, row_count, created_at
		 FROM datasets ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	infos := make([]DatasetInfo, 0)
	for rows.Next() {
		var (
			info      DatasetInfo
			columns   string
			createdAt string
		)
		if err := rows.Scan(&info.ID, &info.Name, &columns, &info.RowCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		if err := json.Unmarshal([]byte(columns), &info.Columns); err != nil {
			return nil, fmt.Errorf("failed to decode columns: %w", err)
		}
		// RFC3339 is what SaveDataset writes; ignore parse errors for rows
		// created by older schema defaults
		info.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteDataset removes a dataset; rows and hierarchies cascade.
func (s *SQLiteStore) DeleteDataset(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("dataset %s not found", id)
	}
	return nil
}

// SaveHierarchies replaces the hierarchy definitions for a dataset.
func (s *SQLiteStore) SaveHierarchies(ctx context.Context, datasetID string, hierarchies []drill.Hierarchy) error {
	for i := range hierarchies {
		if err := hierarchies[i].Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM hierarchies WHERE dataset_id = ?`, datasetID); err != nil {
		return fmt.Errorf("failed to clear hierarchies: %w", err)
	}

	for _, h := range hierarchies {
		definition, err := json.Marshal(h)
		if err != nil {
			return fmt.Errorf("failed to encode hierarchy %q: %w", h.Field, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO hierarchies (dataset_id, field, definition) VALUES (?, ?, ?)`,
			datasetID, h.Field, string(definition)); err != nil {
			return fmt.Errorf("failed to save hierarchy %q: %w", h.Field, err)
		}
	}

	return tx.Commit()
}

// ListHierarchies returns the hierarchy definitions stored for a dataset.
func (s *SQLiteStore) ListHierarchies(ctx context.Context, datasetID string) ([]drill.Hierarchy, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT definition FROM hierarchies WHERE dataset_id = ? ORDER BY field`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hierarchies: %w", err)
	}
	defer rows.Close()

	out := make([]drill.Hierarchy, 0)
	for rows.Next() {
		var definition string
		if err := rows.Scan(&definition); err != nil {
			return nil, fmt.Errorf("failed to scan hierarchy: %w", err)
		}
		var h drill.Hierarchy
		if err := json.Unmarshal([]byte(definition), &h); err != nil {
			return nil, fmt.Errorf("failed to decode hierarchy: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
