package resources

import (
	"context"

	"github.com/ukydev/fleet-maintenance/internal/api"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

const servicesPath = "/services"

// ServiceListOptions filters the service list server-side.
type ServiceListOptions struct {
	TruckID string
}

// Services is the access module for /services and its nested materials.
type Services struct {
	client *api.Client
}

// NewServices creates the services resource.
func NewServices(client *api.Client) *Services {
	return &Services{client: client}
}

// List returns services, optionally filtered by truck.
func (r *Services) List(ctx context.Context, opts ServiceListOptions) ([]models.Service, error) {
	endpoint := withQuery(servicesPath, map[string]string{"truckId": opts.TruckID})
	return api.Get[[]models.Service](ctx, r.client, endpoint)
}

// ListByTruck returns the services of one truck.
func (r *Services) ListByTruck(ctx context.Context, truckID string) ([]models.Service, error) {
	return r.List(ctx, ServiceListOptions{TruckID: truckID})
}

// Get returns one service.
func (r *Services) Get(ctx context.Context, id string) (*models.Service, error) {
	svc, err := api.Get[models.Service](ctx, r.client, servicesPath+"/"+pathID(id))
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// Create registers a new service; the backend assigns its id.
func (r *Services) Create(ctx context.Context, in models.ServiceInput) (*models.Service, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	svc, err := api.Post[models.Service](ctx, r.client, servicesPath, in)
	if err != nil {
		return nil, err
	}
	if svc.ID == "" {
		return nil, ErrMissingID
	}
	return &svc, nil
}

// Update sends only the fields set in patch.
func (r *Services) Update(ctx context.Context, id string, patch models.ServicePatch) (*models.Service, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	svc, err := api.Put[models.Service](ctx, r.client, servicesPath+"/"+pathID(id), patch)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// Delete removes a service.
func (r *Services) Delete(ctx context.Context, id string) error {
	return api.Delete(ctx, r.client, servicesPath+"/"+pathID(id))
}
