package services

import (
	"fmt"
	"time"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
	apperrors "github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/errors"
)

// emergencyReserveWindow bounds how far into the working interval slots may
// be reserved for urgent cases: early-day capacity is held back, late-day
// slots are always bookable as normal appointments.
const emergencyReserveWindow = 4 * time.Hour

const slotTimeLayout = "15:04"

// SlotPlanRequest describes one doctor/day slot enumeration
type SlotPlanRequest struct {
	StartTime        string
	EndTime          string
	SlotDuration     time.Duration
	BookedTimes      map[string]struct{}
	EmergencyReserve int
	ArrivalRate      float64
	ServiceRate      float64
	Servers          int
}

// SlotPlanner builds wait-time-annotated appointment slots for a working
// interval. The plan is a plain ordered list, cheap to recompute whenever
// the booking view opens.
type SlotPlanner struct {
	estimator *WaitEstimator
}

// NewSlotPlanner creates a new slot planner
func NewSlotPlanner(estimator *WaitEstimator) *SlotPlanner {
	return &SlotPlanner{estimator: estimator}
}

// PlanSlots enumerates slots from StartTime to EndTime (exclusive) stepped by
// SlotDuration. Availability comes from the booked set; the first
// EmergencyReserve slots inside the reserve window are tagged emergency.
// The wait estimate is computed once for the doctor's rates and applied to
// every open slot; booked slots report zero wait.
func (p *SlotPlanner) PlanSlots(req SlotPlanRequest) ([]entities.AppointmentSlot, error) {
	start, err := time.Parse(slotTimeLayout, req.StartTime)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid start time %q, expected HH:MM", req.StartTime))
	}
	end, err := time.Parse(slotTimeLayout, req.EndTime)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid end time %q, expected HH:MM", req.EndTime))
	}
	if !end.After(start) {
		return nil, apperrors.NewValidationError("end time must be after start time")
	}
	if req.SlotDuration <= 0 {
		return nil, apperrors.NewValidationError("slot duration must be positive")
	}

	metrics, err := p.estimator.ComputeMetrics(req.ArrivalRate, req.ServiceRate, req.Servers)
	if err != nil {
		return nil, err
	}
	openWait := metrics.ExpectedWaitMinutes

	var slots []entities.AppointmentSlot
	reserved := 0
	for cursor := start; cursor.Before(end); cursor = cursor.Add(req.SlotDuration) {
		label := cursor.Format(slotTimeLayout)
		_, booked := req.BookedTimes[label]

		kind := entities.SlotKindNormal
		if reserved < req.EmergencyReserve && cursor.Sub(start) < emergencyReserveWindow {
			kind = entities.SlotKindEmergency
			reserved++
		}

		wait := openWait
		if booked {
			// No wait to report for a slot that cannot be taken.
			wait = 0
		}

		slots = append(slots, entities.AppointmentSlot{
			Time:                 label,
			Available:            !booked,
			EstimatedWaitMinutes: wait,
			Kind:                 kind,
		})
	}

	return slots, nil
}
