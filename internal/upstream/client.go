// Package upstream: клиент REST API платформы: каталог авторов, медиа,
// подписки и загрузка файлов.
package upstream

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

var (
	// ErrNotFound возвращается, когда API отвечает 404.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized возвращается, когда API отклоняет токен зрителя.
	ErrUnauthorized = errors.New("unauthorized")
)

// envelope: общий формат ответов API.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// DefaultUploadTimeout ограничивает отправку пакета файлов целиком.
const DefaultUploadTimeout = 10 * time.Minute

// Client ходит в REST API от имени зрителя. Токен передаётся в каждом вызове явно.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	uploadClient *http.Client
}

// NewClient создаёт клиент API. timeout действует на обычные запросы,
// загрузка файлов ограничена DefaultUploadTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		uploadClient: &http.Client{Timeout: DefaultUploadTimeout},
	}
}

// WithUploadTimeout задаёт таймаут отправки пакета файлов.
func (c *Client) WithUploadTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.uploadClient = &http.Client{Timeout: timeout}
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := c.newRequest(ctx, method, path, token, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do выполняет запрос и раскладывает поле data ответа в out.
func (c *Client) do(req *http.Request, out any) error {
	return send(c.httpClient, req, out)
}

func send(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		if decodeErr == nil && env.Error != "" {
			return fmt.Errorf("unexpected status %s: %s", resp.Status, env.Error)
		}
		return errors.New("unexpected status: " + resp.Status)
	}

	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, op, path, token string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func escape(id string) string {
	return url.PathEscape(id)
}
