package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient talks to the remote todo service over its JSON REST API.
type HTTPClient struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the service at baseURL, authenticating
// with a bearer token.
func NewHTTPClient(baseURL, apiToken string) *HTTPClient {
	return &HTTPClient{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest performs an HTTP request with authentication
func (c *HTTPClient) doRequest(ctx context.Context, method, endpoint string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// apiError drains the response body into an APIError for the operation.
func apiError(op string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(resp.Body)
	e := NewAPIError(op, resp.StatusCode, http.StatusText(resp.StatusCode))
	e.Body = string(body)
	return e
}

// GetLists retrieves the full remote snapshot, items nested in their lists.
func (c *HTTPClient) GetLists(ctx context.Context) ([]List, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/lists", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("GetLists", resp)
	}

	var lists []List
	if err := json.NewDecoder(resp.Body).Decode(&lists); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return lists, nil
}

// CreateList creates a list with its items and returns the created list,
// remote ids assigned.
func (c *HTTPClient) CreateList(ctx context.Context, req CreateListRequest) (*List, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/lists", req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apiError("CreateList", resp)
	}

	var list List
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &list, nil
}

// UpdateList updates the mutable fields of a list.
func (c *HTTPClient) UpdateList(ctx context.Context, listID string, req UpdateListRequest) (*List, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, "/lists/"+listID, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("UpdateList", resp)
	}

	var list List
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &list, nil
}

// DeleteList deletes a list. Callers treat a 404 (surfaced as ErrNotFound)
// as success.
func (c *HTTPClient) DeleteList(ctx context.Context, listID string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/lists/"+listID, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return apiError("DeleteList", resp)
	}
	return nil
}

// UpdateItem updates an item within a list. The service upserts: a missing
// item id is created rather than rejected.
func (c *HTTPClient) UpdateItem(ctx context.Context, listID, itemID string, req UpdateItemRequest) (*Item, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/lists/"+listID+"/items/"+itemID, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apiError("UpdateItem", resp)
	}

	var item Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &item, nil
}

// DeleteItem deletes an item from a list. Callers treat a 404 as success.
func (c *HTTPClient) DeleteItem(ctx context.Context, listID, itemID string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/lists/"+listID+"/items/"+itemID, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return apiError("DeleteItem", resp)
	}
	return nil
}
