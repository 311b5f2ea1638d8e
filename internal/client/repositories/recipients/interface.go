// Package recipients provides the request-recipient resource repository.
package recipients

import (
	"context"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
)

// Repository describes recipient operations. The parent request identifier
// travels inside the payload on create, as the API expects.
type Repository interface {
	Create(ctx context.Context, recipient models.Recipient) (*models.Recipient, error)
	Update(ctx context.Context, id string, recipient models.Recipient) (*models.Recipient, error)
	Delete(ctx context.Context, id string) error
}
