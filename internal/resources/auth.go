package resources

import (
	"context"

	"github.com/ukydev/fleet-maintenance/internal/api"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Auth is the authentication resource.
type Auth struct {
	client *api.Client
}

// NewAuth creates the authentication resource.
func NewAuth(client *api.Client) *Auth {
	return &Auth{client: client}
}

// Login exchanges credentials for a token and the user record.
func (a *Auth) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	if err := (models.LoginRequest{Username: username, Password: password}).Validate(); err != nil {
		return nil, err
	}
	return a.client.Login(ctx, username, password)
}
