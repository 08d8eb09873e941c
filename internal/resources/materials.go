package resources

import (
	"context"

	"github.com/ukydev/fleet-maintenance/internal/api"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Materials live under their service: the service id is part of the path and
// never of the body.

func materialsPath(serviceID string) string {
	return servicesPath + "/" + pathID(serviceID) + "/materials"
}

// ListMaterials returns the materials consumed by a service.
func (r *Services) ListMaterials(ctx context.Context, serviceID string) ([]models.Material, error) {
	return api.Get[[]models.Material](ctx, r.client, materialsPath(serviceID))
}

// AddMaterial logs a material against a service.
func (r *Services) AddMaterial(ctx context.Context, serviceID string, in models.MaterialInput) (*models.Material, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	m, err := api.Post[models.Material](ctx, r.client, materialsPath(serviceID), in)
	if err != nil {
		return nil, err
	}
	if m.ID == "" {
		return nil, ErrMissingID
	}
	return &m, nil
}

// UpdateMaterial sends only the fields set in patch.
func (r *Services) UpdateMaterial(ctx context.Context, serviceID, materialID string, patch models.MaterialPatch) (*models.Material, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	m, err := api.Put[models.Material](ctx, r.client, materialsPath(serviceID)+"/"+pathID(materialID), patch)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMaterial removes a material from a service.
func (r *Services) DeleteMaterial(ctx context.Context, serviceID, materialID string) error {
	return api.Delete(ctx, r.client, materialsPath(serviceID)+"/"+pathID(materialID))
}
