package repositories

import (
	"context"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
)

// DoctorLoadRepository defines read access to doctor load snapshots.
// The ranking service never mutates a snapshot.
type DoctorLoadRepository interface {
	// GetByID retrieves one doctor's load snapshot
	GetByID(ctx context.Context, id string) (*entities.DoctorLoad, error)

	// ListByDepartment retrieves load snapshots for a department.
	// An empty department lists all doctors.
	ListByDepartment(ctx context.Context, department string) ([]*entities.DoctorLoad, error)
}
