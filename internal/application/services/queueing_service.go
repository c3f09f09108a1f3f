package services

import (
	"math"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
	apperrors "github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/errors"
)

// Efficiency thresholds for labelling a doctor queue as running well.
const (
	efficientUtilizationPercent = 85.0
	efficientWaitMinutes        = 30.0
)

// WaitEstimator computes M/M/c queueing metrics (Erlang-C) for a doctor
// queue. Rates are per hour. Stateless; every method is pure.
type WaitEstimator struct{}

// NewWaitEstimator creates a new wait estimator
func NewWaitEstimator() *WaitEstimator {
	return &WaitEstimator{}
}

// ComputeMetrics derives utilization, expected queue wait and average queue
// length from an arrival rate, a per-server service rate and a server count.
//
// A system at or beyond capacity (utilization >= 100%) is reported with
// Saturated set rather than a diverging wait time; the caller decides how to
// render that. Non-positive rates or a server count below one are programmer
// errors and fail with a validation error.
func (e *WaitEstimator) ComputeMetrics(arrivalRate, serviceRate float64, servers int) (entities.QueueMetrics, error) {
	if arrivalRate <= 0 {
		return entities.QueueMetrics{}, apperrors.NewValidationError("arrival rate must be positive")
	}
	if serviceRate <= 0 {
		return entities.QueueMetrics{}, apperrors.NewValidationError("service rate must be positive")
	}
	if servers < 1 {
		return entities.QueueMetrics{}, apperrors.NewValidationError("server count must be at least 1")
	}

	c := float64(servers)
	offeredLoad := arrivalRate / serviceRate // a = lambda/mu
	rho := offeredLoad / c
	utilization := rho * 100

	if rho >= 1 {
		// The closed form diverges; report saturation explicitly
		// instead of letting the (1-rho) division produce garbage.
		return entities.QueueMetrics{
			UtilizationPercent: utilization,
			Saturated:          true,
		}, nil
	}

	// Erlang-C normalization: P0 is the steady-state probability of an
	// empty system.
	sum := 0.0
	term := 1.0 // a^n / n! accumulated iteratively
	for n := 0; n < servers; n++ {
		sum += term
		term = term * offeredLoad / float64(n+1)
	}
	// After the loop, term = a^c / c!
	boundary := term / (1 - rho)
	p0 := 1 / (sum + boundary)

	// Expected number waiting in queue.
	lq := term * rho / ((1 - rho) * (1 - rho)) * p0

	// Little's Law, hours to minutes.
	wq := lq / arrivalRate * 60

	// Floating point can leave a negative zero artifact at tiny rho.
	if wq < 0 {
		wq = 0
	}
	if lq < 0 {
		lq = 0
	}

	return entities.QueueMetrics{
		ExpectedWaitMinutes: wq,
		UtilizationPercent:  utilization,
		AverageQueueLength:  lq,
		IsEfficient:         utilization < efficientUtilizationPercent && wq < efficientWaitMinutes,
	}, nil
}

// EstimateWaitMinutes is a convenience wrapper returning only the expected
// wait, with saturation mapped to +Inf for ranking purposes.
func (e *WaitEstimator) EstimateWaitMinutes(arrivalRate, serviceRate float64, servers int) (float64, error) {
	metrics, err := e.ComputeMetrics(arrivalRate, serviceRate, servers)
	if err != nil {
		return 0, err
	}
	if metrics.Saturated {
		return math.Inf(1), nil
	}
	return metrics.ExpectedWaitMinutes, nil
}
