// Package loader fetches everything one screen needs in a single batch.
// Requests in a batch run concurrently; the first failure cancels the rest
// and the batch returns no partial data.
package loader

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/api"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/resources"
	"golang.org/x/sync/errgroup"
)

// TruckSource is the part of the trucks resource the loader reads.
type TruckSource interface {
	List(ctx context.Context) ([]models.Truck, error)
	Get(ctx context.Context, id string) (*models.Truck, error)
}

// ServiceSource is the part of the services resource the loader reads.
type ServiceSource interface {
	List(ctx context.Context, opts resources.ServiceListOptions) ([]models.Service, error)
	Get(ctx context.Context, id string) (*models.Service, error)
	ListMaterials(ctx context.Context, serviceID string) ([]models.Material, error)
}

// MeasurementSource is the part of the measurements resource the loader reads.
type MeasurementSource interface {
	List(ctx context.Context, opts resources.MeasurementListOptions) ([]models.Measurement, error)
}

// Loader batches resource reads per view.
type Loader struct {
	trucks       TruckSource
	services     ServiceSource
	measurements MeasurementSource
}

// New creates a loader over explicit sources.
func New(trucks TruckSource, services ServiceSource, measurements MeasurementSource) *Loader {
	return &Loader{trucks: trucks, services: services, measurements: measurements}
}

// NewFromClient creates a loader over the REST resources of client.
func NewFromClient(client *api.Client) *Loader {
	return New(resources.NewTrucks(client), resources.NewServices(client), resources.NewMeasurements(client))
}

// ReportData feeds the report engine.
type ReportData struct {
	Trucks   []models.Truck
	Services []models.Service
}

// Report loads trucks and services together.
func (l *Loader) Report(ctx context.Context) (*ReportData, error) {
	var data ReportData
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Trucks, err = l.trucks.List(ctx)
		return wrap("trucks", err)
	})
	g.Go(func() (err error) {
		data.Services, err = l.services.List(ctx, resources.ServiceListOptions{})
		return wrap("services", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// MeasurementsData backs the measurements screen and its create form.
type MeasurementsData struct {
	Measurements []models.Measurement
	Trucks       []models.Truck
	Services     []models.Service
}

// Measurements loads measurements with the trucks and services used to label
// them.
func (l *Loader) Measurements(ctx context.Context, opts resources.MeasurementListOptions) (*MeasurementsData, error) {
	var data MeasurementsData
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Measurements, err = l.measurements.List(ctx, opts)
		return wrap("measurements", err)
	})
	g.Go(func() (err error) {
		data.Trucks, err = l.trucks.List(ctx)
		return wrap("trucks", err)
	})
	g.Go(func() (err error) {
		data.Services, err = l.services.List(ctx, resources.ServiceListOptions{})
		return wrap("services", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// TruckDetail is one truck with its service history.
type TruckDetail struct {
	Truck    *models.Truck
	Services []models.Service
}

// TruckDetail loads a truck and its services together.
func (l *Loader) TruckDetail(ctx context.Context, id string) (*TruckDetail, error) {
	var data TruckDetail
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Truck, err = l.trucks.Get(ctx, id)
		return wrap("truck", err)
	})
	g.Go(func() (err error) {
		data.Services, err = l.services.List(ctx, resources.ServiceListOptions{TruckID: id})
		return wrap("services", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// ServiceDetail is one service with its materials and truck.
type ServiceDetail struct {
	Service   *models.Service
	Materials []models.Material
	// Truck is nil when the service has no truck id.
	Truck *models.Truck
}

// ServiceDetail loads a service and its materials together. The truck comes
// from the service's embed when present, otherwise from a follow-up lookup.
func (l *Loader) ServiceDetail(ctx context.Context, id string) (*ServiceDetail, error) {
	var data ServiceDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Service, err = l.services.Get(gctx, id)
		return wrap("service", err)
	})
	g.Go(func() (err error) {
		data.Materials, err = l.services.ListMaterials(gctx, id)
		return wrap("materials", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	switch {
	case data.Service.Truck != nil:
		data.Truck = data.Service.Truck
	case data.Service.TruckID != "":
		truck, err := l.trucks.Get(ctx, data.Service.TruckID)
		if err != nil {
			return nil, wrap("truck", err)
		}
		data.Truck = truck
	default:
		log.WithField("service_id", id).Debug("Service has no truck")
	}
	return &data, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
