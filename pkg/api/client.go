package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"taskflow/pkg/utils"
)

// DefaultTimeout bounds every request when the config does not set one.
const DefaultTimeout = 10 * time.Second

// TokenSource supplies the current bearer token, or "" when logged out.
// The session store implements it.
type TokenSource interface {
	Token() string
}

// HTTPError is a non-2xx response from the server, carrying the status
// code and the server's message field when one was present.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

// Client talks to the TaskFlow REST API. All methods take a context so
// superseded or abandoned requests can be cancelled.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New creates a client for the API at baseURL. A zero timeout falls
// back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// do builds, sends and decodes one request. Login and register are the
// only unauthenticated calls; everything else attaches the bearer token.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	utils.Log("%s %s [%s]", method, u, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode}
		// The server sends {"message": "..."} on failures; tolerate
		// bodies that don't.
		var envelope struct {
			Message string `json:"message"`
		}
		if data, err := io.ReadAll(resp.Body); err == nil {
			if json.Unmarshal(data, &envelope) == nil {
				httpErr.Message = envelope.Message
			}
		}
		utils.Log("%s %s [%s] failed: %v", method, path, requestID, httpErr)
		return httpErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResponse, error) {
	payload := map[string]string{"name": name, "email": email, "password": password}
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, payload, &resp, false)
	return resp, err
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, payload, &resp, false)
	return resp, err
}

// ListTasks fetches one page of tasks. The params come straight from
// the query state machine.
func (c *Client) ListTasks(ctx context.Context, params url.Values) (TaskPage, error) {
	var page TaskPage
	err := c.do(ctx, http.MethodGet, "/tasks", params, nil, &page, true)
	return page, err
}

// DashboardStats fetches the dashboard summary.
func (c *Client) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	err := c.do(ctx, http.MethodGet, "/tasks/dashboard/stats", nil, nil, &stats, true)
	return stats, err
}

// GetTask fetches a single task by id.
func (c *Client) GetTask(ctx context.Context, id string) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, nil, &task, true)
	return task, err
}

// CreateTask creates a task and returns the server's record.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPost, "/tasks", nil, input, &task, true)
	return task, err
}

// UpdateTask replaces a task's editable fields.
func (c *Client) UpdateTask(ctx context.Context, id string, input TaskInput) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPut, "/tasks/"+id, nil, input, &task, true)
	return task, err
}

// MarkDone sets just the status to done and returns the updated record,
// which is authoritative for the cache.
func (c *Client) MarkDone(ctx context.Context, id string) (Task, error) {
	payload := map[string]Status{"status": StatusDone}
	var task Task
	err := c.do(ctx, http.MethodPut, "/tasks/"+id, nil, payload, &task, true)
	return task, err
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil, nil, true)
}
