package sheets

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresStore implements the Store interface on top of PostgreSQL. Each
// sheet lives in the sheet_rows table as one JSONB row per sheet row;
// row_index 0 is the header row.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgreSQL-backed store
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (s *PostgresStore) GetDB() *sqlx.DB {
	return s.db
}

func (s *PostgresStore) Read(ctx context.Context, name string) (*Sheet, error) {
	query := `
		SELECT row_index, cells FROM sheet_rows
		WHERE sheet_name = $1
		ORDER BY row_index ASC
	`

	type storedRow struct {
		RowIndex int64  `db:"row_index"`
		Cells    []byte `db:"cells"`
	}

	var stored []storedRow
	if err := s.db.SelectContext(ctx, &stored, query, name); err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, nil // Sheet not found
	}

	sheet := &Sheet{Name: name}
	for i, sr := range stored {
		var cells []interface{}
		if err := json.Unmarshal(sr.Cells, &cells); err != nil {
			return nil, fmt.Errorf("corrupt row %d in sheet %q: %w", sr.RowIndex, name, err)
		}
		if i == 0 {
			headers := make([]string, len(cells))
			for j, c := range cells {
				headers[j] = CellText(c)
			}
			sheet.Headers = headers
			continue
		}
		sheet.Rows = append(sheet.Rows, cells)
	}

	return sheet, nil
}

func (s *PostgresStore) CreateSheet(ctx context.Context, name string, headers []string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sheet_rows WHERE sheet_name = $1)`, name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("sheet %q already exists", name)
	}

	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	encoded, err := json.Marshal(cells)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sheet_rows (sheet_name, row_index, cells) VALUES ($1, 0, $2)`,
		name, encoded)
	return err
}

func (s *PostgresStore) AppendRow(ctx context.Context, name string, row []interface{}) error {
	encoded, err := json.Marshal(row)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	// The header row must exist; appending to an unknown sheet is an error.
	var maxIndex int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(row_index), -1) FROM sheet_rows WHERE sheet_name = $1`,
		name).Scan(&maxIndex)
	if err != nil {
		return err
	}
	if maxIndex < 0 {
		err = fmt.Errorf("sheet %q does not exist", name)
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sheet_rows (sheet_name, row_index, cells) VALUES ($1, $2, $3)`,
		name, maxIndex+1, encoded)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PostgresStore) UpdateCell(ctx context.Context, name string, row, col int, value interface{}) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	physical, cells, err := s.lockRow(ctx, tx, name, row)
	if err != nil {
		return err
	}

	for len(cells) <= col {
		cells = append(cells, nil)
	}
	cells[col] = value

	var encoded []byte
	encoded, err = json.Marshal(cells)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE sheet_rows SET cells = $1 WHERE sheet_name = $2 AND row_index = $3`,
		encoded, name, physical)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PostgresStore) DeleteRow(ctx context.Context, name string, row int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	physical, _, err := s.lockRow(ctx, tx, name, row)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM sheet_rows WHERE sheet_name = $1 AND row_index = $2`,
		name, physical)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// lockRow resolves a 0-based data row position to its physical row_index and
// returns the current cells, locking the row for the rest of the transaction.
func (s *PostgresStore) lockRow(ctx context.Context, tx *sql.Tx, name string, row int) (int64, []interface{}, error) {
	if row < 0 {
		return 0, nil, fmt.Errorf("row index %d out of range in sheet %q", row, name)
	}

	var physical int64
	var raw []byte
	err := tx.QueryRowContext(ctx, `
		SELECT row_index, cells FROM sheet_rows
		WHERE sheet_name = $1 AND row_index > 0
		ORDER BY row_index ASC
		OFFSET $2 LIMIT 1
		FOR UPDATE
	`, name, row).Scan(&physical, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, fmt.Errorf("row index %d out of range in sheet %q", row, name)
		}
		return 0, nil, err
	}

	var cells []interface{}
	if err := json.Unmarshal(raw, &cells); err != nil {
		return 0, nil, fmt.Errorf("corrupt row %d in sheet %q: %w", physical, name, err)
	}

	return physical, cells, nil
}
