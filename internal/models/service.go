package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ServiceStatus is the lifecycle state of a maintenance service.
type ServiceStatus string

const (
	StatusPending    ServiceStatus = "PENDENTE"
	StatusInProgress ServiceStatus = "EM_ANDAMENTO"
	StatusCompleted  ServiceStatus = "CONCLUIDO"
	StatusCanceled   ServiceStatus = "CANCELADO"

	// StatusAll is the filter sentinel meaning "any status".
	StatusAll ServiceStatus = "ALL"
)

// ServiceStatuses lists the assignable statuses in display order.
var ServiceStatuses = []ServiceStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCanceled}

// IsValid checks if a status is one of the assignable statuses
func (s ServiceStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// Label returns the badge text shown for a status.
func (s ServiceStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusInProgress:
		return "Em Andamento"
	case StatusCompleted:
		return "Concluído"
	case StatusCanceled:
		return "Cancelado"
	case StatusAll:
		return "Todos"
	default:
		return string(s)
	}
}

// ParseServiceStatus parses user input into a status. Empty, "ALL" and "TODOS"
// map to StatusAll.
func ParseServiceStatus(s string) (ServiceStatus, error) {
	v := ServiceStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch v {
	case "", StatusAll, "TODOS":
		return StatusAll, nil
	}
	if !v.IsValid() {
		return "", fmt.Errorf("unknown service status %q", s)
	}
	return v, nil
}

// Service is a maintenance job performed on a truck.
type Service struct {
	ID           string        `json:"id"`
	TruckID      string        `json:"truckId"`
	Truck        *Truck        `json:"truck,omitempty"`
	Equipment    string        `json:"equipment"`
	ServiceDate  string        `json:"serviceDate"`
	OF           string        `json:"of"`
	Meter        Amount        `json:"meter"`
	Value        Amount        `json:"value"`
	Status       ServiceStatus `json:"status"`
	Observations *string       `json:"observations,omitempty"`
	Chassis      *string       `json:"chassis,omitempty"`
}

// UnmarshalJSON accepts both camelCase and snake_case keys for the truck
// reference and the service date; the backend has emitted both.
func (s *Service) UnmarshalJSON(data []byte) error {
	type plain Service
	var aux struct {
		plain
		SnakeTruckID     string `json:"truck_id"`
		SnakeServiceDate string `json:"service_date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Service(aux.plain)
	if s.TruckID == "" {
		s.TruckID = aux.SnakeTruckID
	}
	if s.ServiceDate == "" {
		s.ServiceDate = aux.SnakeServiceDate
	}
	return nil
}

// ServiceInput is the payload for creating a service.
type ServiceInput struct {
	TruckID      string        `json:"truckId" validate:"required"`
	Equipment    string        `json:"equipment" validate:"required"`
	ServiceDate  string        `json:"serviceDate" validate:"required,datetime=2006-01-02"`
	OF           string        `json:"of" validate:"required"`
	Meter        float64       `json:"meter" validate:"gte=0"`
	Value        float64       `json:"value" validate:"gte=0"`
	Status       ServiceStatus `json:"status" validate:"required,service_status"`
	Observations string        `json:"observations,omitempty"`
	Chassis      string        `json:"chassis,omitempty"`
}

// Validate checks the input before it is submitted.
func (in ServiceInput) Validate() error {
	return validateStruct(in)
}

// ServicePatch carries the fields of a partial service update. Nil fields are not sent.
type ServicePatch struct {
	TruckID      *string        `json:"truckId,omitempty" validate:"omitempty,min=1"`
	Equipment    *string        `json:"equipment,omitempty" validate:"omitempty,min=1"`
	ServiceDate  *string        `json:"serviceDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	OF           *string        `json:"of,omitempty" validate:"omitempty,min=1"`
	Meter        *float64       `json:"meter,omitempty" validate:"omitempty,gte=0"`
	Value        *float64       `json:"value,omitempty" validate:"omitempty,gte=0"`
	Status       *ServiceStatus `json:"status,omitempty" validate:"omitempty,service_status"`
	Observations *string        `json:"observations,omitempty"`
	Chassis      *string        `json:"chassis,omitempty"`
}

// Validate checks the patch before it is submitted.
func (p ServicePatch) Validate() error {
	return validateStruct(p)
}
