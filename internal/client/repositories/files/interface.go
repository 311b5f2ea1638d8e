// Package files provides the request-file resource repository.
package files

import (
	"context"
	"io"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
)

// Repository describes file attachment operations. Upload is multipart; the
// parent request identifier travels as a form field.
type Repository interface {
	Create(ctx context.Context, requestID, name string, content io.Reader) (*models.File, error)
	Delete(ctx context.Context, id string) error
}
