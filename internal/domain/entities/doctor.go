package entities

// DoctorLoad is a snapshot of one doctor's current assignment load against
// their capacity, supplied by the caller at ranking time.
type DoctorLoad struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Department  string `json:"department" db:"department"`
	CurrentLoad int    `json:"current_load" db:"current_load"`
	MaxCapacity int    `json:"max_capacity" db:"max_capacity"`
}

// HasCapacity reports whether the doctor can take another assignment
func (d *DoctorLoad) HasCapacity() bool {
	return d.CurrentLoad < d.MaxCapacity
}
