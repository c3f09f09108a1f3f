package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/repositories"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/infrastructure/clients/postgres"
	apperrors "github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/errors"
)

// DoctorLoadAdapter implements DoctorLoadRepository against the hosted
// backend's doctor table. Reads only; load snapshots are maintained by the
// surrounding application.
type DoctorLoadAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDoctorLoadAdapter creates a new doctor load adapter
func NewDoctorLoadAdapter(client *postgres.Client) repositories.DoctorLoadRepository {
	return &DoctorLoadAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves one doctor's load snapshot
func (a *DoctorLoadAdapter) GetByID(ctx context.Context, id string) (*entities.DoctorLoad, error) {
	query, args, err := a.db.Select(
		"id", "name", "department", "current_load", "max_capacity",
	).From("doctor_loads").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	load := &entities.DoctorLoad{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&load.ID, &load.Name, &load.Department, &load.CurrentLoad, &load.MaxCapacity,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get doctor load", err)
	}

	return load, nil
}

// ListByDepartment retrieves load snapshots for a department in stable order
func (a *DoctorLoadAdapter) ListByDepartment(ctx context.Context, department string) ([]*entities.DoctorLoad, error) {
	ds := a.db.Select(
		"id", "name", "department", "current_load", "max_capacity",
	).From("doctor_loads").
		Order(goqu.I("id").Asc())

	if department != "" {
		ds = ds.Where(goqu.Ex{"department": department})
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctor loads", err)
	}
	defer rows.Close()

	var loads []*entities.DoctorLoad
	for rows.Next() {
		load := &entities.DoctorLoad{}
		if err := rows.Scan(&load.ID, &load.Name, &load.Department, &load.CurrentLoad, &load.MaxCapacity); err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor load", err)
		}
		loads = append(loads, load)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate doctor loads", err)
	}

	return loads, nil
}
