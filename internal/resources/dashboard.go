package resources

import (
	"context"

	"github.com/ukydev/fleet-maintenance/internal/api"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Dashboard is the read-only aggregate resource.
type Dashboard struct {
	client *api.Client
}

// NewDashboard creates the dashboard resource.
func NewDashboard(client *api.Client) *Dashboard {
	return &Dashboard{client: client}
}

// Stats returns the server-computed dashboard snapshot.
func (r *Dashboard) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats, err := api.Get[models.DashboardStats](ctx, r.client, "/dashboard")
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
