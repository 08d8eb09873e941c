package models

// Truck represents a fleet vehicle being serviced.
type Truck struct {
	ID           string `json:"id"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Observations string `json:"observations,omitempty"`

	// Server-computed aggregates, present only on some endpoints.
	ServicesCount *int    `json:"servicesCount,omitempty"`
	TotalValue    *Amount `json:"totalValue,omitempty"`
	TotalMeters   *Amount `json:"totalMeters,omitempty"`
	PendingCount  *int    `json:"pendingCount,omitempty"`
}

// Label is the "<brand> <model>" name used in lists and reports.
func (t Truck) Label() string {
	return t.Brand + " " + t.Model
}

// TruckInput is the payload for creating a truck.
type TruckInput struct {
	Brand        string `json:"brand" validate:"required"`
	Model        string `json:"model" validate:"required"`
	Year         int    `json:"year" validate:"required,min=1900,max=2100"`
	Observations string `json:"observations,omitempty"`
}

// Validate checks the input before it is submitted.
func (in TruckInput) Validate() error {
	return validateStruct(in)
}

// TruckPatch carries the fields of a partial truck update. Nil fields are not sent.
type TruckPatch struct {
	Brand        *string `json:"brand,omitempty" validate:"omitempty,min=1"`
	Model        *string `json:"model,omitempty" validate:"omitempty,min=1"`
	Year         *int    `json:"year,omitempty" validate:"omitempty,min=1900,max=2100"`
	Observations *string `json:"observations,omitempty"`
}

// Validate checks the patch before it is submitted.
func (p TruckPatch) Validate() error {
	return validateStruct(p)
}

// IsEmpty reports whether the patch changes nothing.
func (p TruckPatch) IsEmpty() bool {
	return p.Brand == nil && p.Model == nil && p.Year == nil && p.Observations == nil
}
