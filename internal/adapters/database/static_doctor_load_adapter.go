package database

import (
	"context"
	"fmt"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/repositories"
	apperrors "github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/errors"
)

// StaticDoctorLoadAdapter serves a fixed set of load snapshots. Used when no
// load database is configured and in tests.
type StaticDoctorLoadAdapter struct {
	loads []entities.DoctorLoad
}

// NewStaticDoctorLoadAdapter creates a load repository over fixed snapshots
func NewStaticDoctorLoadAdapter(loads []entities.DoctorLoad) repositories.DoctorLoadRepository {
	return &StaticDoctorLoadAdapter{loads: loads}
}

// GetByID retrieves one doctor's load snapshot
func (a *StaticDoctorLoadAdapter) GetByID(ctx context.Context, id string) (*entities.DoctorLoad, error) {
	for _, l := range a.loads {
		if l.ID == id {
			snapshot := l
			return &snapshot, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor %s not found", id))
}

// ListByDepartment retrieves load snapshots for a department in input order
func (a *StaticDoctorLoadAdapter) ListByDepartment(ctx context.Context, department string) ([]*entities.DoctorLoad, error) {
	var out []*entities.DoctorLoad
	for _, l := range a.loads {
		if department != "" && l.Department != department {
			continue
		}
		snapshot := l
		out = append(out, &snapshot)
	}
	return out, nil
}
