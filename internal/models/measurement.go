package models

import "github.com/shopspring/decimal"

// Measurement is a before/after entre-eixo reading tied to a truck and,
// optionally, to a service.
type Measurement struct {
	ID              string   `json:"id"`
	TruckID         string   `json:"truckId"`
	ServiceID       string   `json:"serviceId,omitempty"`
	Truck           *Truck   `json:"truck,omitempty"`
	Service         *Service `json:"service,omitempty"`
	MeasurementDate string   `json:"measurementDate"`
	Technician      string   `json:"technician"`
	ValueBefore     Amount   `json:"valueBefore"`
	ValueAfter      Amount   `json:"valueAfter"`
	Observations    string   `json:"observations,omitempty"`
}

// Difference is ValueAfter - ValueBefore. It is derived for display only.
func (m Measurement) Difference() decimal.Decimal {
	return m.ValueAfter.Sub(m.ValueBefore.Decimal)
}

// MeasurementInput is the payload for recording a measurement.
type MeasurementInput struct {
	TruckID         string  `json:"truckId" validate:"required"`
	ServiceID       string  `json:"serviceId,omitempty"`
	MeasurementDate string  `json:"measurementDate" validate:"required,datetime=2006-01-02"`
	Technician      string  `json:"technician" validate:"required"`
	ValueBefore     float64 `json:"valueBefore" validate:"gte=0"`
	ValueAfter      float64 `json:"valueAfter" validate:"gte=0"`
	Observations    string  `json:"observations,omitempty"`
}

// Validate checks the input before it is submitted.
func (in MeasurementInput) Validate() error {
	return validateStruct(in)
}
