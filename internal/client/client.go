// Package client is the JSON API client used by the terminal front end.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"todoapp/config"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/shared/constant"
	"todoapp/shared/failure"
	"todoapp/transport/http/response"
)

const todoPath = "/todo"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.Client.BaseURL, "/"),
		httpClient: &http.Client{Timeout: time.Duration(cfg.Client.TimeoutSeconds) * time.Second},
	}
}

func (c *Client) List(ctx context.Context) (dto.TodosResponse, error) {
	var todos dto.TodosResponse
	if err := c.do(ctx, http.MethodGet, todoPath, nil, &todos); err != nil {
		return nil, err
	}

	if todos == nil {
		todos = dto.TodosResponse{}
	}

	return todos, nil
}

func (c *Client) Create(ctx context.Context, content string) (dto.TodoResponse, error) {
	var todo dto.TodoResponse
	err := c.do(ctx, http.MethodPost, todoPath, dto.CreateTodoRequest{Content: &content}, &todo)

	return todo, err
}

func (c *Client) Update(ctx context.Context, id, content string) (dto.TodoResponse, error) {
	var todo dto.TodoResponse
	err := c.do(ctx, http.MethodPatch, todoPath+"/"+url.PathEscape(id), dto.UpdateTodoRequest{Content: &content}, &todo)

	return todo, err
}

func (c *Client) Delete(ctx context.Context, id string) (dto.TodoResponse, error) {
	var todo dto.TodoResponse
	err := c.do(ctx, http.MethodDelete, todoPath+"/"+url.PathEscape(id), nil, &todo)

	return todo, err
}

// do sends body as JSON and unwraps the {"data": ...} envelope into out. Error responses come
// back as *failure.Failure carrying the server's status and message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errBody response.Error
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil || errBody.Error == nil {
			return &failure.Failure{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}

		return &failure.Failure{Code: resp.StatusCode, Message: *errBody.Error}
	}

	envelope := struct {
		Data any `json:"data"`
	}{Data: out}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
