package entities

// QueueMetrics is the M/M/c model output for one doctor queue.
//
// When Saturated is true the arrival rate meets or exceeds total service
// capacity: the closed-form wait diverges, so ExpectedWaitMinutes and
// AverageQueueLength carry no meaning and are left at zero. Callers should
// render "no capacity" instead of a number.
type QueueMetrics struct {
	ExpectedWaitMinutes float64 `json:"expected_wait_minutes"`
	UtilizationPercent  float64 `json:"utilization_percent"`
	AverageQueueLength  float64 `json:"average_queue_length"`
	IsEfficient         bool    `json:"is_efficient"`
	Saturated           bool    `json:"saturated"`
}
