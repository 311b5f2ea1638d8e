package requests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/paperdispatch/paperdispatch/internal/common"
	"github.com/paperdispatch/paperdispatch/internal/dbx"
	"github.com/paperdispatch/paperdispatch/internal/server/models"
)

// PostgresRepository implements request storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const requestColumns = `id, owner_id, name,
	sender_organization_name, sender_full_name, sender_address_country,
	sender_postal_code, sender_address_locality, sender_street_address,
	sender_building_number, date_created, date_submitted`

func scanRequest(row interface{ Scan(dest ...any) error }) (*models.Request, error) {
	var item models.Request
	var submitted sql.NullTime
	if err := row.Scan(
		&item.Identifier, &item.OwnerID, &item.Name,
		&item.SenderOrganizationName, &item.SenderFullName, &item.SenderAddressCountry,
		&item.SenderPostalCode, &item.SenderAddressLocality, &item.SenderStreetAddress,
		&item.SenderBuildingNumber, &item.DateCreated, &submitted,
	); err != nil {
		return nil, err
	}
	if submitted.Valid {
		t := submitted.Time
		item.DateSubmitted = &t
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, req *models.Request) error {
	query := `
		INSERT INTO requests (id, owner_id, name,
			sender_organization_name, sender_full_name, sender_address_country,
			sender_postal_code, sender_address_locality, sender_street_address,
			sender_building_number, date_created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.ExecContext(ctx, query,
		req.Identifier, req.OwnerID, req.Name,
		req.SenderOrganizationName, req.SenderFullName, req.SenderAddressCountry,
		req.SenderPostalCode, req.SenderAddressLocality, req.SenderStreetAddress,
		req.SenderBuildingNumber, req.DateCreated)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id=$1 AND owner_id=$2`
	item, err := scanRequest(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE owner_id=$1 ORDER BY date_created DESC, id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select requests: %w", err)
	}
	defer rows.Close()

	var result []*models.Request
	for rows.Next() {
		item, err := scanRequest(rows)
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

func (r *PostgresRepository) UpdateSender(ctx context.Context, req *models.Request) error {
	query := `
		UPDATE requests SET
			sender_organization_name=$1, sender_full_name=$2, sender_address_country=$3,
			sender_postal_code=$4, sender_address_locality=$5, sender_street_address=$6,
			sender_building_number=$7
		WHERE id=$8 AND owner_id=$9;
	`
	res, err := r.db.ExecContext(ctx, query,
		req.SenderOrganizationName, req.SenderFullName, req.SenderAddressCountry,
		req.SenderPostalCode, req.SenderAddressLocality, req.SenderStreetAddress,
		req.SenderBuildingNumber, req.Identifier, req.OwnerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) SetSubmitted(ctx context.Context, ownerID, id string, at time.Time) error {
	query := `UPDATE requests SET date_submitted=$1 WHERE id=$2 AND owner_id=$3 AND date_submitted IS NULL`
	res, err := r.db.ExecContext(ctx, query, at, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM requests WHERE id=$1 AND owner_id=$2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
