// Package api implements the CredentialAPI port against the controller's
// REST interface.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
	retryablehttp "github.com/hashicorp/go-retryablehttp"

	"github.com/gregjones/httpcache"

	"github.com/credpanel/credpanel/internal/domain/model"
	"github.com/credpanel/credpanel/internal/domain/port/driven"
	"github.com/credpanel/credpanel/internal/metrics"
	"github.com/credpanel/credpanel/internal/queryparams"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialAPI = (*Client)(nil)

const credentialsPath = "api/v1/credentials"

// Client implements the driven.CredentialAPI port over the controller's
// REST API.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	token   string
}

// NewClient creates a controller API client with the following transport stack:
//  1. cleanhttp pooled transport (sane defaults, no shared globals)
//  2. httpcache (ETag-based conditional request caching for list reads)
//  3. retryablehttp (retries with jittered backoff on 5xx and transport errors)
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.Transport = cleanhttp.DefaultPooledTransport()

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil // request logging happens at the driving side
	rc.HTTPClient = &http.Client{
		Transport: cacheTransport,
		Timeout:   timeout,
	}

	return &Client{
		http:    rc.StandardClient(),
		baseURL: u,
		token:   token,
	}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL. This constructor is intended for testing, allowing injection of an
// httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	return &Client{
		http:    httpClient,
		baseURL: u,
		token:   token,
	}, nil
}

// listResponse is the controller's wire shape for a credential list page.
type listResponse struct {
	Results []json.RawMessage `json:"results"`
	Count   int               `json:"count"`
}

// actionsResponse is the controller's wire shape for the OPTIONS call.
type actionsResponse struct {
	Actions map[string]json.RawMessage `json:"actions"`
}

// wireCredential is the subset of credential fields the console reads.
// The full payload is preserved on Credential.Raw.
type wireCredential struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// ListCredentials fetches one page of credentials matching q. The request
// always carries page, page_size, and order_by explicitly.
func (c *Client) ListCredentials(ctx context.Context, q model.Query) (*model.CredentialPage, error) {
	u := c.baseURL.JoinPath(credentialsPath)
	u.RawQuery = queryparams.Values(q).Encode()

	var resp listResponse
	if err := c.doJSON(ctx, http.MethodGet, u, &resp); err != nil {
		return nil, fmt.Errorf("listing credentials (page %d): %w", q.Page, err)
	}

	page := &model.CredentialPage{
		Credentials: make([]model.Credential, 0, len(resp.Results)),
		Count:       resp.Count,
	}
	for _, raw := range resp.Results {
		cred, err := mapCredential(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding credential: %w", err)
		}
		page.Credentials = append(page.Credentials, cred)
	}

	return page, nil
}

// CredentialActions returns the verbs the controller permits on the
// credential collection.
func (c *Client) CredentialActions(ctx context.Context) (model.Actions, error) {
	u := c.baseURL.JoinPath(credentialsPath)

	var resp actionsResponse
	if err := c.doJSON(ctx, http.MethodOptions, u, &resp); err != nil {
		return nil, fmt.Errorf("fetching credential actions: %w", err)
	}

	actions := make(model.Actions, len(resp.Actions))
	for verb, schema := range resp.Actions {
		actions[verb] = schema
	}
	return actions, nil
}

// DeleteCredential removes a single credential by id. A 404 from the
// controller maps to driven.ErrCredentialNotFound.
func (c *Client) DeleteCredential(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("credential id is empty")
	}

	u := c.baseURL.JoinPath(credentialsPath, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u.String(), nil)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", id, err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.DeletesTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("deleting credential %q: %w", id, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		metrics.DeletesTotal.WithLabelValues("success").Inc()
		return nil
	case http.StatusNotFound:
		metrics.DeletesTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("deleting credential %q: %w", id, driven.ErrCredentialNotFound)
	default:
		metrics.DeletesTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("deleting credential %q: %w", id, readAPIError(resp))
	}
}

// doJSON performs a request and decodes a 200 JSON body into out.
func (c *Client) doJSON(ctx context.Context, method string, u *url.URL, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// readAPIError builds an error from a non-2xx response, including a bounded
// body excerpt for the modal/detail channels.
func readAPIError(resp *http.Response) error {
	const maxBody = 512
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if len(body) == 0 {
		return fmt.Errorf("controller returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("controller returned status %d: %s", resp.StatusCode, body)
}

// mapCredential decodes a raw controller credential into the domain type,
// keeping the original payload attached.
func mapCredential(raw json.RawMessage) (model.Credential, error) {
	var wire wireCredential
	if err := json.Unmarshal(raw, &wire); err != nil {
		return model.Credential{}, err
	}
	if wire.ID == "" {
		return model.Credential{}, fmt.Errorf("credential is missing an id")
	}

	return model.Credential{
		ID:          wire.ID,
		Name:        wire.Name,
		Kind:        wire.Kind,
		Description: wire.Description,
		Notes:       wire.Notes,
		CreatedAt:   wire.CreatedAt,
		ModifiedAt:  wire.ModifiedAt,
		Raw:         raw,
	}, nil
}
