package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Tado3/Star-Space/internal/models"
)

const installationColumns = `id, name, contact, email, installation_type,
			      installation_date, invoice, notes, created_at, updated_at`

func scanInstallation(row interface{ Scan(dest ...any) error }) (*models.Installation, error) {
	var inst models.Installation
	var invoice, notes sql.NullString
	if err := row.Scan(&inst.ID, &inst.Name, &inst.Contact, &inst.Email,
		&inst.InstallationType, &inst.InstallationDate, &invoice, &notes,
		&inst.CreatedAt, &inst.UpdatedAt); err != nil {
		return nil, err
	}
	inst.Invoice = invoice.String
	inst.Notes = notes.String
	return &inst, nil
}

func collectInstallations(rows *sql.Rows) ([]*models.Installation, error) {
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Installation
	for rows.Next() {
		inst, err := scanInstallation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, inst)
	}
	return result, rows.Err()
}

// CreateInstallation inserts a new installation record and returns its ID.
func (s *Storage) CreateInstallation(ctx context.Context, inst models.Installation) (int, error) {
	const op = "storage.CreateInstallation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO installations (name, contact, email,
			      installation_type, installation_date, invoice, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		inst.Name, inst.Contact, inst.Email, inst.InstallationType,
		inst.InstallationDate, inst.Invoice, inst.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadInstallation returns an installation by ID, or ErrNotFound.
func (s *Storage) ReadInstallation(ctx context.Context, id int) (*models.Installation, error) {
	const op = "storage.ReadInstallation"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + installationColumns + ` FROM installations WHERE id = $1`
	inst, err := scanInstallation(s.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return inst, nil
}

// UpdateInstallation updates an installation record by ID and returns
// the number of affected rows.
func (s *Storage) UpdateInstallation(ctx context.Context, inst models.Installation, id int) (int64, error) {
	const op = "storage.UpdateInstallation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE installations
			  SET name = $1, contact = $2, email = $3, installation_type = $4,
			      installation_date = $5, invoice = $6, notes = $7,
			      updated_at = now()
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		inst.Name, inst.Contact, inst.Email, inst.InstallationType,
		inst.InstallationDate, inst.Invoice, inst.Notes, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ListInstallations returns all installation records, newest
// installation date first.
func (s *Storage) ListInstallations(ctx context.Context) ([]*models.Installation, error) {
	const op = "storage.ListInstallations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + installationColumns + `
			  FROM installations
			  ORDER BY installation_date DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectInstallations(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListInstallationsByType returns the installations of one type, newest
// first.
func (s *Storage) ListInstallationsByType(ctx context.Context, installationType models.InstallationType) ([]*models.Installation, error) {
	const op = "storage.ListInstallationsByType"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + installationColumns + `
			  FROM installations
			  WHERE installation_type = $1
			  ORDER BY installation_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, installationType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectInstallations(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListRecentInstallations returns the most recent installations for the
// dashboard.
func (s *Storage) ListRecentInstallations(ctx context.Context, limit int) ([]*models.Installation, error) {
	const op = "storage.ListRecentInstallations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + installationColumns + `
			  FROM installations
			  ORDER BY installation_date DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := collectInstallations(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountInstallations computes the total and per-type counts in one pass.
func (s *Storage) CountInstallations(ctx context.Context) (models.InstallationCounts, error) {
	const op = "storage.CountInstallations"
	select {
	case <-ctx.Done():
		return models.InstallationCounts{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COUNT(*),
			      COUNT(*) FILTER (WHERE installation_type = $1),
			      COUNT(*) FILTER (WHERE installation_type = $2),
			      COUNT(*) FILTER (WHERE installation_type = $3),
			      COUNT(*) FILTER (WHERE installation_type = $4)
			  FROM installations`
	var counts models.InstallationCounts
	err := s.DB.QueryRowContext(ctx, query,
		models.InstallationStarlink, models.InstallationCCTV,
		models.InstallationNetworking, models.InstallationSolar).Scan(
		&counts.Total, &counts.Starlink, &counts.CCTV, &counts.Networking, &counts.Solar)
	if err != nil {
		return models.InstallationCounts{}, fmt.Errorf("%s: %w", op, err)
	}
	return counts, nil
}
