// Package gateway wraps the remote inventory API. Every operation is a
// single round trip with no retry; any transport failure or non-2xx status
// surfaces as one opaque error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"stocklab.io/inventory-chat/internal/state"
)

type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]state.Product, error) {
	var products []state.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct fetches a single product by its server-assigned id.
func (c *Client) GetProduct(ctx context.Context, id int64) (state.Product, error) {
	var product state.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return state.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

func (c *Client) ListSuppliers(ctx context.Context) ([]state.Supplier, error) {
	var suppliers []state.Supplier
	if err := c.do(ctx, http.MethodGet, "/suppliers", nil, &suppliers); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

// CreateProduct submits the draft with its raw form strings; the backend
// coerces them.
func (c *Client) CreateProduct(ctx context.Context, draft state.DraftProduct) (state.Product, error) {
	var created state.Product
	if err := c.do(ctx, http.MethodPost, "/products", draft, &created); err != nil {
		return state.Product{}, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

func (c *Client) CreateSupplier(ctx context.Context, name string) (state.Supplier, error) {
	var created state.Supplier
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/suppliers", body, &created); err != nil {
		return state.Supplier{}, fmt.Errorf("create supplier: %w", err)
	}
	return created, nil
}

// SubmitQuery posts a natural-language question and returns the body
// untouched. The response shape is not contractually fixed; interpreting it
// is the classifier's job.
func (c *Client) SubmitQuery(ctx context.Context, question string) (json.RawMessage, error) {
	body := map[string]string{"question": question}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/query", body, &raw); err != nil {
		return nil, fmt.Errorf("submit query: %w", err)
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, requestBody, response interface{}) error {
	var bodyBytes []byte
	if requestBody != nil {
		var err error
		bodyBytes, err = json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Warn("gateway request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("non-OK status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if response != nil {
		if err := json.Unmarshal(body, response); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}
