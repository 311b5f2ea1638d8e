// Package requests provides the dispatch request resource repository:
// a stateless facade translating domain operations into REST calls.
package requests

import (
	"context"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
)

// Repository describes the request-level operations of the dispatch API.
// Implementations keep no state; every call maps to exactly one endpoint.
type Repository interface {
	// List returns all requests of the current principal. The server gives no
	// ordering guarantee; callers define their own sort.
	List(ctx context.Context) ([]models.DispatchRequest, error)

	// Get returns the canonical server representation of one request.
	Get(ctx context.Context, id string) (*models.DispatchRequest, error)

	// Create opens a new draft with the given subject and sender block.
	Create(ctx context.Context, name string, sender models.SenderInfo) (*models.DispatchRequest, error)

	// UpdateSender replaces the sender block of a draft.
	UpdateSender(ctx context.Context, id string, sender models.SenderInfo) (*models.DispatchRequest, error)

	// Delete removes a draft.
	Delete(ctx context.Context, id string) error

	// Submit marks the request as submitted; the server enforces the
	// files/recipients precondition authoritatively.
	Submit(ctx context.Context, id string) (*models.DispatchRequest, error)
}
