package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/google/uuid"
)

const recordColumns = `id, created_at, updated_at, display_name, owner_email, requested_by, tenant_id, group_id, status, error`

// CreateRecord inserts a pending record and returns it as stored.
func (p *ProvisioningDB) CreateRecord(ctx context.Context, displayName, ownerEmail, requestedBy string) (*models.ProvisioningRecord, error) {
	query := `INSERT INTO provisioning_records (id, display_name, owner_email, requested_by, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + recordColumns

	record, err := scanRecord(p.DB.QueryRowContext(ctx, query,
		uuid.New(), displayName, ownerEmail, requestedBy, models.StatusPending))
	if err != nil {
		return nil, fmt.Errorf("error inserting provisioning record: %w", err)
	}

	p.Log.Debug().Str("record_id", record.ID.String()).Msg("Provisioning record created")
	return record, nil
}

// MarkGroupCreated stores the tenant and group of a record.
func (p *ProvisioningDB) MarkGroupCreated(ctx context.Context, id uuid.UUID, tenantID, groupID string) error {
	return p.update(ctx, `UPDATE provisioning_records
		SET status = $2, tenant_id = NULLIF($3, ''), group_id = $4, updated_at = NOW()
		WHERE id = $1`, id, models.StatusGroupCreated, tenantID, groupID)
}

// UpdateStatus moves a record to status, recording errMsg when not empty.
func (p *ProvisioningDB) UpdateStatus(ctx context.Context, id uuid.UUID, status, errMsg string) error {
	return p.update(ctx, `UPDATE provisioning_records
		SET status = $2, error = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $1`, id, status, errMsg)
}

func (p *ProvisioningDB) update(ctx context.Context, query string, id uuid.UUID, args ...interface{}) error {
	res, err := p.DB.ExecContext(ctx, query, append([]interface{}{id}, args...)...)
	if err != nil {
		return fmt.Errorf("error updating provisioning record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error updating provisioning record: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("provisioning record %s not found", id)
	}
	return nil
}

// GetRecord returns the record with id, or nil when there is none.
func (p *ProvisioningDB) GetRecord(ctx context.Context, id uuid.UUID) (*models.ProvisioningRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM provisioning_records WHERE id = $1`

	record, err := scanRecord(p.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving provisioning record: %w", err)
	}
	return record, nil
}

// GetRecords lists the records requested by requestedBy, newest first.
func (p *ProvisioningDB) GetRecords(ctx context.Context, requestedBy string) ([]models.ProvisioningRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM provisioning_records
		WHERE requested_by = $1 ORDER BY created_at DESC`

	rows, err := p.DB.QueryContext(ctx, query, requestedBy)
	if err != nil {
		return nil, fmt.Errorf("error retrieving provisioning records: %w", err)
	}
	defer rows.Close()

	var records []models.ProvisioningRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning provisioning records: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*models.ProvisioningRecord, error) {
	var r models.ProvisioningRecord
	if err := row.Scan(
		&r.ID,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.DisplayName,
		&r.OwnerEmail,
		&r.RequestedBy,
		&r.TenantID,
		&r.GroupID,
		&r.Status,
		&r.Error); err != nil {
		return nil, err
	}
	return &r, nil
}
