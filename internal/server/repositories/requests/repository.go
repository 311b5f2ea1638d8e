// Package requests provides server-side persistence for dispatch request
// rows. Every read and write is scoped by the owner extracted from the
// bearer token; a row belonging to another owner behaves as if it did not
// exist.
package requests

import (
	"context"
	"time"

	"github.com/paperdispatch/paperdispatch/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, req *models.Request) error
	GetByID(ctx context.Context, ownerID, id string) (*models.Request, error)
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.Request, error)
	UpdateSender(ctx context.Context, req *models.Request) error
	SetSubmitted(ctx context.Context, ownerID, id string, at time.Time) error
	Delete(ctx context.Context, ownerID, id string) error
}
