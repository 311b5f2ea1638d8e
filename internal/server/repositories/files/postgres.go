package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/paperdispatch/paperdispatch/internal/common"
	"github.com/paperdispatch/paperdispatch/internal/dbx"
	"github.com/paperdispatch/paperdispatch/internal/server/models"
)

// PostgresRepository implements file storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const fileColumns = `id, request_id, name, content_size, file_format, date_created, storage_key`

func scanFile(row interface{ Scan(dest ...any) error }) (*models.File, error) {
	var item models.File
	if err := row.Scan(
		&item.Identifier, &item.DispatchRequestIdentifier, &item.Name,
		&item.ContentSize, &item.FileFormat, &item.DateCreated, &item.StorageKey,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, f *models.File) error {
	query := `
		INSERT INTO files (id, request_id, name, content_size, file_format, date_created, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.ExecContext(ctx, query,
		f.Identifier, f.DispatchRequestIdentifier, f.Name,
		f.ContentSize, f.FileFormat, f.DateCreated, f.StorageKey)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id=$1`
	item, err := scanFile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) SelectByRequest(ctx context.Context, requestID string) ([]*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE request_id=$1 ORDER BY date_created, id`
	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		item, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM files WHERE id=$1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
