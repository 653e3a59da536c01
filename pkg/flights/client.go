package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	offersPath = "/v2/shopping/flight-offers"
	tokenPath  = "/v1/security/oauth2/token"
)

// HTTPClient is the subset of *http.Client used by Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the flight offers API
type Client struct {
	baseURL    string
	httpClient HTTPClient
}

// NewClient returns a client authenticating with OAuth2 client credentials.
// Tokens are fetched from baseURL + /v1/security/oauth2/token and reused until expiry.
func NewClient(baseURL, clientID, clientSecret string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	cc := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + tokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	base := &http.Client{Timeout: 20 * time.Second}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	return &Client{
		baseURL:    baseURL,
		httpClient: cc.Client(ctx),
	}
}

// NewClientWithHTTP uses an already authenticated HTTP client
func NewClientWithHTTP(baseURL string, c HTTPClient) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: c}
}

// Search performs one upstream offers request
func (c *Client) Search(ctx context.Context, q Query) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+offersPath+"?"+q.values().Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.amadeus+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		var e errorResponse
		_ = json.Unmarshal(body, &e)
		detail := e.message()
		if detail == "" {
			detail = "rejected by flight provider"
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidSearch, detail)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var offers offersResponse
	if err := json.Unmarshal(body, &offers); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrUpstream, err)
	}
	return normalise(offers), nil
}
