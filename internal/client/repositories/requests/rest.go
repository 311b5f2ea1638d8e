package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
	"github.com/paperdispatch/paperdispatch/internal/client/transport"
	"github.com/paperdispatch/paperdispatch/internal/common"
)

const collectionPath = "/dispatch/requests"

// listPerPage is sent as the perPage hint; the server returns the full set
// for the principal, pagination is a presentation concern.
const listPerPage = 9999

type RESTRepository struct {
	client transport.Client
}

func NewRESTRepository(c transport.Client) *RESTRepository {
	return &RESTRepository{client: c}
}

// hydraCollection mirrors the hydra envelope of collection responses.
// TotalItems stays raw: the backend occasionally renders it as a string,
// in which case the collection is treated as empty.
type hydraCollection struct {
	TotalItems json.RawMessage          `json:"hydra:totalItems"`
	Members    []models.DispatchRequest `json:"hydra:member"`
}

func (r *RESTRepository) List(ctx context.Context) ([]models.DispatchRequest, error) {

	path := fmt.Sprintf("%s?perPage=%d", collectionPath, listPerPage)
	body, err := r.client.SendJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var coll hydraCollection
	if err := json.Unmarshal(body, &coll); err != nil {
		return nil, fmt.Errorf("%w: decode collection: %v", common.ErrParse, err)
	}

	var total int
	if len(coll.TotalItems) == 0 || json.Unmarshal(coll.TotalItems, &total) != nil {
		return []models.DispatchRequest{}, nil
	}

	if coll.Members == nil {
		return []models.DispatchRequest{}, nil
	}
	return coll.Members, nil
}

func (r *RESTRepository) Get(ctx context.Context, id string) (*models.DispatchRequest, error) {
	body, err := r.client.SendJSON(ctx, http.MethodGet, collectionPath+"/"+id, nil)
	if err != nil {
		return nil, err
	}
	return decodeRequest(body)
}

func (r *RESTRepository) Create(ctx context.Context, name string, sender models.SenderInfo) (*models.DispatchRequest, error) {

	payload := models.DispatchRequest{Name: name, SenderInfo: sender}

	body, err := r.client.SendJSON(ctx, http.MethodPost, collectionPath, payload)
	if err != nil {
		return nil, err
	}
	return decodeRequest(body)
}

func (r *RESTRepository) UpdateSender(ctx context.Context, id string, sender models.SenderInfo) (*models.DispatchRequest, error) {
	body, err := r.client.SendJSON(ctx, http.MethodPut, collectionPath+"/"+id, sender)
	if err != nil {
		return nil, err
	}
	return decodeRequest(body)
}

func (r *RESTRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.SendJSON(ctx, http.MethodDelete, collectionPath+"/"+id, nil)
	return err
}

func (r *RESTRepository) Submit(ctx context.Context, id string) (*models.DispatchRequest, error) {
	body, err := r.client.SendJSON(ctx, http.MethodPost, collectionPath+"/"+id+"/submit", struct{}{})
	if err != nil {
		return nil, err
	}
	return decodeRequest(body)
}

func decodeRequest(body []byte) (*models.DispatchRequest, error) {
	var req models.DispatchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: decode request: %v", common.ErrParse, err)
	}
	return &req, nil
}
