// Package client is the data layer for consumers of the task API: a typed
// HTTP client, a path-keyed read cache with mutation helpers, and an
// optimistic edit session for the update flow.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is an HTTP-level failure the server reported deliberately:
// a validation message, a not-found, or a generic 500 body. Transport
// failures (connection refused, timeouts) surface as ordinary wrapped
// errors instead, so callers can tell the two apart with errors.As.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// Client issues requests against the task API. The zero timeout of
// http.DefaultClient is kept on purpose; nothing in this system configures
// one explicitly.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL, e.g.
// "http://localhost:8080/api". A nil httpClient falls back to
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// ListTasks fetches all tasks, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task by id.
func (c *Client) GetTask(ctx context.Context, id uint) (Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// CreateTask creates a task; the server assigns id and timestamps and
// forces completed to false.
func (c *Client) CreateTask(ctx context.Context, data TaskCreation) (Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks", data, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// UpdateTask applies a partial update and returns the server's version of
// the task.
func (c *Client) UpdateTask(ctx context.Context, id uint, data TaskUpdate) (Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), data, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id uint) string {
	return fmt.Sprintf("/tasks/%d", id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: body.Error}
}
