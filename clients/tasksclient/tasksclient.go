// Package tasksclient talks to the tasktracker HTTP API.
package tasksclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Task mirrors the server's task representation.
type Task struct {
	ID          string    `json:"_id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Completed   bool      `json:"completed" yaml:"completed"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// CreateTask is the body of a create request.
type CreateTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTask is the body of a partial update. Nil fields are omitted.
type UpdateTask struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tasks api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("tasks api: %d %s", e.StatusCode, e.Message)
}

// ServerMessage returns the {message} the server sent with err, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// Defaults used when nothing else is configured.
const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 10 * time.Second
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// Client issues one HTTP request per call and never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API rooted at baseURL, e.g.
// http://localhost:5000/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimSuffix(u.String(), "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns every task, newest first.
func (c *Client) List(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Get returns one task.
func (c *Client) Get(ctx context.Context, id string) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, &task)
	return task, err
}

// Create stores a new task.
func (c *Client) Create(ctx context.Context, in CreateTask) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPost, "/tasks", in, &task)
	return task, err
}

// Update applies a partial update.
func (c *Client) Update(ctx context.Context, id string, in UpdateTask) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), in, &task)
	return task, err
}

// Delete removes a task and returns the server's confirmation message.
func (c *Client) Delete(ctx context.Context, id string) (string, error) {
	var body struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, &body)
	return body.Message, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
