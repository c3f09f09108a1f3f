package entities

// SlotKind distinguishes emergency-reserved slots from regular ones
type SlotKind string

const (
	SlotKindNormal    SlotKind = "normal"
	SlotKindEmergency SlotKind = "emergency"
)

// AppointmentSlot is one bookable time point within a doctor's working
// interval, annotated with an estimated wait. Slots are recomputed on demand
// and never persisted.
type AppointmentSlot struct {
	Time                 string   `json:"time"`
	Available            bool     `json:"available"`
	EstimatedWaitMinutes float64  `json:"estimated_wait_minutes"`
	Kind                 SlotKind `json:"kind"`
}
