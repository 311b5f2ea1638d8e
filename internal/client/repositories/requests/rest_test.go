package requests

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
	"github.com/paperdispatch/paperdispatch/internal/common"
)

// fakeTransport records the last call and plays back a canned response.
type fakeTransport struct {
	method string
	path   string
	body   any

	response []byte
	err      error
}

func (f *fakeTransport) SendJSON(ctx context.Context, method, path string, body any) ([]byte, error) {
	f.method = method
	f.path = path
	f.body = body
	return f.response, f.err
}

func (f *fakeTransport) SendMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, content io.Reader) ([]byte, error) {
	f.path = path
	return f.response, f.err
}

func (f *fakeTransport) Ping(ctx context.Context) error { return nil }

func TestList_DecodesHydraCollection(t *testing.T) {
	ft := &fakeTransport{response: []byte(`{
		"hydra:totalItems": 2,
		"hydra:member": [
			{"identifier": "a", "name": "First"},
			{"identifier": "b", "name": "Second"}
		]
	}`)}
	r := NewRESTRepository(ft)

	items, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].Identifier)
	require.Equal(t, "GET", ft.method)
	require.Equal(t, "/dispatch/requests?perPage=9999", ft.path)
}

func TestList_NonNumericTotalItemsMeansEmpty(t *testing.T) {
	// The backend occasionally renders hydra:totalItems as a string; the
	// collection is then treated as empty rather than failing.
	ft := &fakeTransport{response: []byte(`{
		"hydra:totalItems": "2",
		"hydra:member": [{"identifier": "a", "name": "First"}]
	}`)}
	r := NewRESTRepository(ft)

	items, err := r.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestList_MissingMembersMeansEmpty(t *testing.T) {
	ft := &fakeTransport{response: []byte(`{"hydra:totalItems": 0}`)}
	r := NewRESTRepository(ft)

	items, err := r.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestList_MalformedBodyIsParseError(t *testing.T) {
	ft := &fakeTransport{response: []byte(`<html>boom</html>`)}
	r := NewRESTRepository(ft)

	_, err := r.List(context.Background())
	require.ErrorIs(t, err, common.ErrParse)
}

func TestGet_PathAndDecode(t *testing.T) {
	ft := &fakeTransport{response: []byte(`{"identifier": "req-1", "name": "Notice", "senderFullName": "Ada"}`)}
	r := NewRESTRepository(ft)

	req, err := r.Get(context.Background(), "req-1")
	require.NoError(t, err)
	require.Equal(t, "/dispatch/requests/req-1", ft.path)
	require.Equal(t, "Notice", req.Name)
	// Flat senderXxx keys land in the embedded sender block.
	require.Equal(t, "Ada", req.FullName)
}

func TestSubmit_PostsToSubmitSubresource(t *testing.T) {
	ft := &fakeTransport{response: []byte(`{"identifier": "req-1", "dateSubmitted": "2026-03-01T10:00:00Z"}`)}
	r := NewRESTRepository(ft)

	req, err := r.Submit(context.Background(), "req-1")
	require.NoError(t, err)
	require.Equal(t, "POST", ft.method)
	require.Equal(t, "/dispatch/requests/req-1/submit", ft.path)
	require.True(t, req.Submitted())
}

func TestTransportErrorsPassThrough(t *testing.T) {
	ft := &fakeTransport{err: &common.RejectedError{Status: 403}}
	r := NewRESTRepository(ft)

	_, err := r.Get(context.Background(), "req-1")
	require.ErrorIs(t, err, common.ErrPermissionDenied)

	var rejected *common.RejectedError
	require.True(t, errors.As(err, &rejected))
}

func TestCreate_SendsNameAndSenderOnly(t *testing.T) {
	ft := &fakeTransport{response: []byte(`{"identifier": "req-9", "name": "Notice"}`)}
	r := NewRESTRepository(ft)

	_, err := r.Create(context.Background(), "Notice", models.SenderInfo{OrganizationName: "ACME"})
	require.NoError(t, err)
	require.Equal(t, "POST", ft.method)
	require.Equal(t, "/dispatch/requests", ft.path)

	payload, ok := ft.body.(models.DispatchRequest)
	require.True(t, ok)
	require.Equal(t, "Notice", payload.Name)
	require.Equal(t, "ACME", payload.OrganizationName)
}
