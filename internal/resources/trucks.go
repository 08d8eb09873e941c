package resources

import (
	"context"

	"github.com/ukydev/fleet-maintenance/internal/api"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

const trucksPath = "/trucks"

// Trucks is the access module for /trucks.
type Trucks struct {
	client *api.Client
}

// NewTrucks creates the trucks resource.
func NewTrucks(client *api.Client) *Trucks {
	return &Trucks{client: client}
}

// List returns every truck.
func (r *Trucks) List(ctx context.Context) ([]models.Truck, error) {
	return api.Get[[]models.Truck](ctx, r.client, trucksPath)
}

// Get returns one truck.
func (r *Trucks) Get(ctx context.Context, id string) (*models.Truck, error) {
	truck, err := api.Get[models.Truck](ctx, r.client, trucksPath+"/"+pathID(id))
	if err != nil {
		return nil, err
	}
	return &truck, nil
}

// Create registers a new truck; the backend assigns its id.
func (r *Trucks) Create(ctx context.Context, in models.TruckInput) (*models.Truck, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	truck, err := api.Post[models.Truck](ctx, r.client, trucksPath, in)
	if err != nil {
		return nil, err
	}
	if truck.ID == "" {
		return nil, ErrMissingID
	}
	return &truck, nil
}

// Update sends only the fields set in patch.
func (r *Trucks) Update(ctx context.Context, id string, patch models.TruckPatch) (*models.Truck, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	truck, err := api.Put[models.Truck](ctx, r.client, trucksPath+"/"+pathID(id), patch)
	if err != nil {
		return nil, err
	}
	return &truck, nil
}

// Delete removes a truck. Related records are the backend's concern.
func (r *Trucks) Delete(ctx context.Context, id string) error {
	return api.Delete(ctx, r.client, trucksPath+"/"+pathID(id))
}
