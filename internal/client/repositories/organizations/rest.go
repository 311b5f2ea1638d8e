package organizations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
	"github.com/paperdispatch/paperdispatch/internal/client/transport"
	"github.com/paperdispatch/paperdispatch/internal/common"
)

type RESTRepository struct {
	client transport.Client
}

func NewRESTRepository(c transport.Client) *RESTRepository {
	return &RESTRepository{client: c}
}

func (r *RESTRepository) Get(ctx context.Context, id string) (*models.Organization, error) {
	path := fmt.Sprintf("/base/organizations/%s?includeLocal=street", id)
	body, err := r.client.SendJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var org models.Organization
	if err := json.Unmarshal(body, &org); err != nil {
		return nil, fmt.Errorf("%w: decode organization: %v", common.ErrParse, err)
	}
	return &org, nil
}
