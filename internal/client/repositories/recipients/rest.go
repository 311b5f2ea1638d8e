package recipients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
	"github.com/paperdispatch/paperdispatch/internal/client/transport"
	"github.com/paperdispatch/paperdispatch/internal/common"
)

const collectionPath = "/dispatch/request-recipients"

type RESTRepository struct {
	client transport.Client
}

func NewRESTRepository(c transport.Client) *RESTRepository {
	return &RESTRepository{client: c}
}

func (r *RESTRepository) Create(ctx context.Context, recipient models.Recipient) (*models.Recipient, error) {
	body, err := r.client.SendJSON(ctx, http.MethodPost, collectionPath, recipient)
	if err != nil {
		return nil, err
	}
	return decodeRecipient(body)
}

func (r *RESTRepository) Update(ctx context.Context, id string, recipient models.Recipient) (*models.Recipient, error) {
	body, err := r.client.SendJSON(ctx, http.MethodPut, collectionPath+"/"+id, recipient)
	if err != nil {
		return nil, err
	}
	return decodeRecipient(body)
}

func (r *RESTRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.SendJSON(ctx, http.MethodDelete, collectionPath+"/"+id, nil)
	return err
}

func decodeRecipient(body []byte) (*models.Recipient, error) {
	var rec models.Recipient
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("%w: decode recipient: %v", common.ErrParse, err)
	}
	return &rec, nil
}
