// Package files provides server-side persistence for the attachment rows of
// dispatch requests. The blob content lives in the configured blob store; a
// row only carries the storage key.
package files

import (
	"context"

	"github.com/paperdispatch/paperdispatch/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, f *models.File) error
	GetByID(ctx context.Context, id string) (*models.File, error)
	SelectByRequest(ctx context.Context, requestID string) ([]*models.File, error)
	Delete(ctx context.Context, id string) error
}
