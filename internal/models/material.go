package models

// Material is a consumable item logged against a service.
type Material struct {
	ID           string `json:"id"`
	ServiceID    string `json:"serviceId"`
	Name         string `json:"name"`
	Quantity     Amount `json:"quantity"`
	Unit         string `json:"unit"`
	Observations string `json:"observations,omitempty"`
}

// CommonUnits are the units offered by the material form; any other free-text
// unit is accepted as "other".
var CommonUnits = []string{"un", "kg", "m", "L", "cx", "pc"}

// IsCommonUnit reports whether unit is in CommonUnits.
func IsCommonUnit(unit string) bool {
	for _, u := range CommonUnits {
		if u == unit {
			return true
		}
	}
	return false
}

// MaterialInput is the payload for adding a material to a service. The owning
// service is addressed by the URL path, never by the body.
type MaterialInput struct {
	Name         string  `json:"name" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gt=0"`
	Unit         string  `json:"unit" validate:"required"`
	Observations string  `json:"observations,omitempty"`
}

// Validate checks the input before it is submitted.
func (in MaterialInput) Validate() error {
	return validateStruct(in)
}

// MaterialPatch carries the fields of a partial material update.
type MaterialPatch struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Quantity     *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Unit         *string  `json:"unit,omitempty" validate:"omitempty,min=1"`
	Observations *string  `json:"observations,omitempty"`
}

// Validate checks the patch before it is submitted.
func (p MaterialPatch) Validate() error {
	return validateStruct(p)
}
