// Package todoist implements the RemoteClient port against the Todoist
// REST v2 API.
package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	defaultBaseURL    = "https://api.todoist.com/rest/v2"
	httpClientTimeout = 30 * time.Second
)

var _ ports.RemoteClient = (*Client)(nil)

// Client implements ports.RemoteClient.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a Todoist client authenticated with the given token.
func New(token string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: httpClientTimeout,
		},
	}
}

// NewWithBaseURL creates a client against a custom endpoint (used for testing).
func NewWithBaseURL(token, baseURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: httpClientTimeout}
	}
	return &Client{baseURL: baseURL, token: token, httpClient: client}
}

// taskPayload mirrors the REST v2 task object for the fields stitch syncs.
type taskPayload struct {
	ID          string      `json:"id"`
	Content     string      `json:"content"`
	IsCompleted bool        `json:"is_completed"`
	Due         *duePayload `json:"due,omitempty"`
}

type duePayload struct {
	Date string `json:"date"`
}

// ListTasks returns the active tasks.
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	body, err := c.do(ctx, http.MethodGet, "/tasks", nil, "")
	if err != nil {
		return nil, err
	}

	var payloads []taskPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, zerr.Wrap(err, domain.ErrRemoteDecodeFailed.Error())
	}

	tasks := make([]domain.Task, 0, len(payloads))
	for _, p := range payloads {
		t := domain.Task{
			StableID: p.ID,
			Title:    p.Content,
			Done:     p.IsCompleted,
		}
		if p.Due != nil {
			t.Due = p.Due.Date
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// CreateTask creates a task and returns its stable ID. The request carries
// an X-Request-Id so a retried create after a lost response does not
// duplicate the task server-side.
func (c *Client) CreateTask(ctx context.Context, title, due string) (string, error) {
	req := map[string]string{"content": title}
	if due != "" {
		req["due_date"] = due
	}

	body, err := c.do(ctx, http.MethodPost, "/tasks", req, uuid.NewString())
	if err != nil {
		return "", err
	}

	var created taskPayload
	if err := json.Unmarshal(body, &created); err != nil {
		return "", zerr.Wrap(err, domain.ErrRemoteDecodeFailed.Error())
	}
	return created.ID, nil
}

// UpdateTask updates the mutable fields of a task.
func (c *Client) UpdateTask(ctx context.Context, stableID string, fields ports.TaskFields) error {
	req := map[string]string{"content": fields.Title}
	if fields.Due != "" {
		req["due_date"] = fields.Due
	}

	_, err := c.do(ctx, http.MethodPost, "/tasks/"+stableID, req, uuid.NewString())
	return err
}

// CloseTask marks a task complete. Todoist treats closing an already-closed
// task as a success, which keeps interrupted runs replayable.
func (c *Client) CloseTask(ctx context.Context, stableID string) error {
	_, err := c.do(ctx, http.MethodPost, "/tasks/"+stableID+"/close", nil, uuid.NewString())
	return err
}

// do performs one API call and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, payload any, requestID string) ([]byte, error) {
	var reqBody io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrRemoteRequestFailed.Error())
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRemoteRequestFailed.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRemoteRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		statusErr := zerr.With(zerr.Wrap(domain.ErrRemoteStatus, ""), "status_code", resp.StatusCode)
		statusErr = zerr.With(statusErr, "method", method)
		return nil, zerr.With(statusErr, "path", path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRemoteRequestFailed.Error())
	}
	return body, nil
}

// String implements fmt.Stringer without exposing the token.
func (c *Client) String() string {
	return fmt.Sprintf("todoist client (%s)", c.baseURL)
}
