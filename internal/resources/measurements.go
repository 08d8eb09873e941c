package resources

import (
	"context"

	"github.com/ukydev/fleet-maintenance/internal/api"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

const measurementsPath = "/measurements"

// MeasurementListOptions filters the measurement list server-side. Dates are
// YYYY-MM-DD strings.
type MeasurementListOptions struct {
	TruckID   string
	ServiceID string
	StartDate string
	EndDate   string
}

// Measurements is the access module for /measurements.
type Measurements struct {
	client *api.Client
}

// NewMeasurements creates the measurements resource.
func NewMeasurements(client *api.Client) *Measurements {
	return &Measurements{client: client}
}

// List returns measurements matching opts.
func (r *Measurements) List(ctx context.Context, opts MeasurementListOptions) ([]models.Measurement, error) {
	endpoint := withQuery(measurementsPath, map[string]string{
		"truckId":   opts.TruckID,
		"serviceId": opts.ServiceID,
		"startDate": opts.StartDate,
		"endDate":   opts.EndDate,
	})
	return api.Get[[]models.Measurement](ctx, r.client, endpoint)
}

// Create records a measurement.
func (r *Measurements) Create(ctx context.Context, in models.MeasurementInput) (*models.Measurement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	m, err := api.Post[models.Measurement](ctx, r.client, measurementsPath, in)
	if err != nil {
		return nil, err
	}
	if m.ID == "" {
		return nil, ErrMissingID
	}
	return &m, nil
}
