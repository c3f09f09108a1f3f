package services

import (
	"context"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/repositories"
)

// DoctorRanker selects the least-loaded doctor eligible for assignment.
// A fully booked roster is an expected outcome, not an error.
type DoctorRanker struct {
	loads repositories.DoctorLoadRepository
}

// NewDoctorRanker creates a new doctor ranker. The repository may be nil when
// callers supply snapshots directly via SelectLeastLoaded.
func NewDoctorRanker(loads repositories.DoctorLoadRepository) *DoctorRanker {
	return &DoctorRanker{loads: loads}
}

// SelectLeastLoaded returns the doctor with the smallest current load among
// those under capacity. Ties keep input order. The second return value is
// false when no doctor has capacity.
func (r *DoctorRanker) SelectLeastLoaded(doctors []entities.DoctorLoad) (entities.DoctorLoad, bool) {
	var best entities.DoctorLoad
	found := false
	for _, d := range doctors {
		if !d.HasCapacity() {
			continue
		}
		if !found || d.CurrentLoad < best.CurrentLoad {
			best = d
			found = true
		}
	}
	return best, found
}

// Recommend loads the department's current snapshots and picks the
// least-loaded eligible doctor.
func (r *DoctorRanker) Recommend(ctx context.Context, department string) (*entities.DoctorLoad, bool, error) {
	loads, err := r.loads.ListByDepartment(ctx, department)
	if err != nil {
		return nil, false, err
	}

	snapshots := make([]entities.DoctorLoad, 0, len(loads))
	for _, l := range loads {
		snapshots = append(snapshots, *l)
	}

	best, ok := r.SelectLeastLoaded(snapshots)
	if !ok {
		return nil, false, nil
	}
	return &best, true, nil
}
