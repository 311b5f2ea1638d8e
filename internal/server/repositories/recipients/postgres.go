package recipients

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/paperdispatch/paperdispatch/internal/common"
	"github.com/paperdispatch/paperdispatch/internal/dbx"
	"github.com/paperdispatch/paperdispatch/internal/server/models"
)

// PostgresRepository implements recipient storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const recipientColumns = `id, request_id, person_id, electronically_deliverable,
	given_name, family_name, address_country, postal_code, address_locality,
	street_address, building_number`

func scanRecipient(row interface{ Scan(dest ...any) error }) (*models.Recipient, error) {
	var item models.Recipient
	if err := row.Scan(
		&item.Identifier, &item.DispatchRequestIdentifier, &item.PersonIdentifier,
		&item.ElectronicallyDeliverable, &item.GivenName, &item.FamilyName,
		&item.AddressCountry, &item.PostalCode, &item.AddressLocality,
		&item.StreetAddress, &item.BuildingNumber,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Recipient) error {
	query := `
		INSERT INTO recipients (id, request_id, person_id, electronically_deliverable,
			given_name, family_name, address_country, postal_code, address_locality,
			street_address, building_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.Identifier, rec.DispatchRequestIdentifier, rec.PersonIdentifier,
		rec.ElectronicallyDeliverable, rec.GivenName, rec.FamilyName,
		rec.AddressCountry, rec.PostalCode, rec.AddressLocality,
		rec.StreetAddress, rec.BuildingNumber)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Recipient, error) {
	query := `SELECT ` + recipientColumns + ` FROM recipients WHERE id=$1`
	item, err := scanRecipient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) SelectByRequest(ctx context.Context, requestID string) ([]*models.Recipient, error) {
	query := `SELECT ` + recipientColumns + ` FROM recipients WHERE request_id=$1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to select recipients: %w", err)
	}
	defer rows.Close()

	var result []*models.Recipient
	for rows.Next() {
		item, err := scanRecipient(rows)
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

func (r *PostgresRepository) Update(ctx context.Context, rec *models.Recipient) error {
	query := `
		UPDATE recipients SET
			electronically_deliverable=$1, given_name=$2, family_name=$3,
			address_country=$4, postal_code=$5, address_locality=$6,
			street_address=$7, building_number=$8
		WHERE id=$9;
	`
	res, err := r.db.ExecContext(ctx, query,
		rec.ElectronicallyDeliverable, rec.GivenName, rec.FamilyName,
		rec.AddressCountry, rec.PostalCode, rec.AddressLocality,
		rec.StreetAddress, rec.BuildingNumber, rec.Identifier)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM recipients WHERE id=$1`
	res, err := r.db.ExecContext(ctx, query, id)
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
