package requests

import (
	"context"
	"sync"
	"time"

	"github.com/paperdispatch/paperdispatch/internal/common"
	"github.com/paperdispatch/paperdispatch/internal/server/models"
)

// InMemoryRepository keeps request rows in insertion order behind a mutex.
// Used for development and handler tests.
type InMemoryRepository struct {
	mu    sync.Mutex
	items []*models.Request
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(ctx context.Context, req *models.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.items = append(r.items, &cp)
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Identifier == id && item.OwnerID == ownerID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Request
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			cp := *item
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *InMemoryRepository) UpdateSender(ctx context.Context, req *models.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Identifier == req.Identifier && item.OwnerID == req.OwnerID {
			item.SenderOrganizationName = req.SenderOrganizationName
			item.SenderFullName = req.SenderFullName
			item.SenderAddressCountry = req.SenderAddressCountry
			item.SenderPostalCode = req.SenderPostalCode
			item.SenderAddressLocality = req.SenderAddressLocality
			item.SenderStreetAddress = req.SenderStreetAddress
			item.SenderBuildingNumber = req.SenderBuildingNumber
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *InMemoryRepository) SetSubmitted(ctx context.Context, ownerID, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Identifier == id && item.OwnerID == ownerID && item.DateSubmitted == nil {
			t := at
			item.DateSubmitted = &t
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.Identifier == id && item.OwnerID == ownerID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}
