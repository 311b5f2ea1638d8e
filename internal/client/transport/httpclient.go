package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/paperdispatch/paperdispatch/internal/common"
)

const contentTypeLDJSON = "application/ld+json"

// HTTPClient implements Client over net/http. It attaches a bearer token from
// the configured token source, never retries, and keeps no state beyond the
// HTTP call itself.
type HTTPClient struct {
	entryPointURL string
	httpClient    *http.Client
	tokens        oauth2.TokenSource
	timeout       time.Duration
}

// NewHTTPClient builds a transport client for the given entry-point URL.
// timeout bounds each individual call; zero disables the bound.
func NewHTTPClient(entryPointURL string, tokens oauth2.TokenSource, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		entryPointURL: strings.TrimRight(entryPointURL, "/"),
		httpClient:    &http.Client{},
		tokens:        tokens,
		timeout:       timeout,
	}
}

func (c *HTTPClient) SendJSON(ctx context.Context, method, path string, body any) ([]byte, error) {

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.entryPointURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", contentTypeLDJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeLDJSON)
	}

	return c.do(req)
}

func (c *HTTPClient) SendMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, content io.Reader) ([]byte, error) {

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("build form field: %w", err)
		}
	}
	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return nil, fmt.Errorf("build form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read file content: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finish form: %w", err)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.entryPointURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", contentTypeLDJSON)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.entryPointURL+"/", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	resp.Body.Close()
	return nil
}

func (c *HTTPClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *HTTPClient) do(req *http.Request) ([]byte, error) {

	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: token source: %v", common.ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A cancelled call is neither success nor failure.
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &common.RejectedError{Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
