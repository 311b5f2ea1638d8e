package recipients

import (
	"context"
	"sync"

	"github.com/paperdispatch/paperdispatch/internal/common"
	"github.com/paperdispatch/paperdispatch/internal/server/models"
)

// InMemoryRepository keeps recipient rows in insertion order behind a mutex.
type InMemoryRepository struct {
	mu    sync.Mutex
	items []*models.Recipient
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(ctx context.Context, rec *models.Recipient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.items = append(r.items, &cp)
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Recipient, error) {
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

func (r *InMemoryRepository) SelectByRequest(ctx context.Context, requestID string) ([]*models.Recipient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Recipient
	for _, item := range r.items {
		if item.DispatchRequestIdentifier == requestID {
			cp := *item
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, rec *models.Recipient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Identifier == rec.Identifier {
			item.ElectronicallyDeliverable = rec.ElectronicallyDeliverable
			item.GivenName = rec.GivenName
			item.FamilyName = rec.FamilyName
			item.AddressCountry = rec.AddressCountry
			item.PostalCode = rec.PostalCode
			item.AddressLocality = rec.AddressLocality
			item.StreetAddress = rec.StreetAddress
			item.BuildingNumber = rec.BuildingNumber
			return nil
		}
	}
	return common.ErrNotFound
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
