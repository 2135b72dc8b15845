package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jetwong/betbook"
)

// DefaultBaseURL is the bets service a client talks to unless configured
// otherwise.
const DefaultBaseURL = "http://localhost:8000"

// Client talks to the bets service. The zero value is not usable; use New.
// It implements betbook.Remote.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a client for the service at baseURL, authenticating every
// request with the given session token. An empty token is allowed: the
// server then answers 401 and the caller decides what that means.
func New(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, token: token, http: http.DefaultClient}
}

// Login exchanges credentials for a session token.
func Login(ctx context.Context, baseURL, username, password string) (token string, err error) {
	c := New(baseURL, "")
	var out struct {
		Token string `json:"token"`
	}
	req := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Config is the per-user configuration stored server side.
type Config struct {
	StartingCapital decimal.Decimal `json:"starting_capital"`
	FixedRatio      decimal.Decimal `json:"fixed_ratio"`
	KellyFactor     decimal.Decimal `json:"kelly_factor"`
	StopLossLimit   int             `json:"stop_loss_limit"`
	Theme           string          `json:"theme,omitempty"`
}

// Config fetches the user configuration, the starting capital in particular.
func (c *Client) Config(ctx context.Context) (Config, error) {
	var cfg Config
	err := c.do(ctx, http.MethodGet, "/api/user/config", nil, &cfg)
	return cfg, err
}

// SetConfig stores the user configuration.
func (c *Client) SetConfig(ctx context.Context, cfg Config) error {
	return c.do(ctx, http.MethodPut, "/api/user/config", cfg, nil)
}

// List implements betbook.Remote.
func (c *Client) List(ctx context.Context, page, pageSize int) ([]betbook.PersistedRecord, int, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var out struct {
		Items []betbook.PersistedRecord `json:"items"`
		Total int                       `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/bets?"+q.Encode(), nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Items, out.Total, nil
}

// Create implements betbook.Remote.
func (c *Client) Create(ctx context.Context, p betbook.PersistedRecord) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/bets", p, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// Update implements betbook.Remote.
func (c *Client) Update(ctx context.Context, id string, p betbook.PersistedRecord) error {
	return c.do(ctx, http.MethodPut, "/api/bets/"+url.PathEscape(id), p, nil)
}

// Delete implements betbook.Remote.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/bets/"+url.PathEscape(id), nil, nil)
}

var _ betbook.Remote = (*Client)(nil)

// do runs one request against the service. A non-2xx answer becomes a
// *betbook.RemoteError carrying the server's detail message.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("cannot marshal %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("cannot create http request %q: %w", path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot execute http request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot read http body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &betbook.RemoteError{Status: resp.StatusCode, Message: detail(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("could not decode %s %s response: %w", method, path, err)
	}
	return nil
}

// detail extracts the human readable message of an error response body.
func detail(data []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return string(data)
}
