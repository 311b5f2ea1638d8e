package files

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
	"github.com/paperdispatch/paperdispatch/internal/client/transport"
	"github.com/paperdispatch/paperdispatch/internal/common"
)

const collectionPath = "/dispatch/request-files"

type RESTRepository struct {
	client transport.Client
}

func NewRESTRepository(c transport.Client) *RESTRepository {
	return &RESTRepository{client: c}
}

func (r *RESTRepository) Create(ctx context.Context, requestID, name string, content io.Reader) (*models.File, error) {

	fields := map[string]string{"dispatchRequestIdentifier": requestID}

	body, err := r.client.SendMultipart(ctx, collectionPath, fields, "file", name, content)
	if err != nil {
		return nil, err
	}

	var f models.File
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("%w: decode file: %v", common.ErrParse, err)
	}
	return &f, nil
}

func (r *RESTRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.SendJSON(ctx, http.MethodDelete, collectionPath+"/"+id, nil)
	return err
}
