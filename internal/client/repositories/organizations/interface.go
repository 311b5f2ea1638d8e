// Package organizations reads base organization records used to prefill the
// sender block of new drafts.
package organizations

import (
	"context"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
)

type Repository interface {
	Get(ctx context.Context, id string) (*models.Organization, error)
}
