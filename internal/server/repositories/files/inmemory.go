package files

import (
	"context"
	"sync"

	"github.com/paperdispatch/paperdispatch/internal/common"
	"github.com/paperdispatch/paperdispatch/internal/server/models"
)

// InMemoryRepository keeps file rows in insertion order behind a mutex.
type InMemoryRepository struct {
	mu    sync.Mutex
	items []*models.File
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(ctx context.Context, f *models.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.items = append(r.items, &cp)
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Identifier == id {
			cp := *item
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) SelectByRequest(ctx context.Context, requestID string) ([]*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.File
	for _, item := range r.items {
		if item.DispatchRequestIdentifier == requestID {
			cp := *item
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.Identifier == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}
