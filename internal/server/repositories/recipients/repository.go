// Package recipients provides server-side persistence for the addressee rows
// of dispatch requests.
package recipients

import (
	"context"

	"github.com/paperdispatch/paperdispatch/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, rec *models.Recipient) error
	GetByID(ctx context.Context, id string) (*models.Recipient, error)
	SelectByRequest(ctx context.Context, requestID string) ([]*models.Recipient, error)
	Update(ctx context.Context, rec *models.Recipient) error
	Delete(ctx context.Context, id string) error
}
