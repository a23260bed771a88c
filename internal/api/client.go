// Package api implements the client for the chat backend endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

// maxReplyBytes bounds how much of a reply body is read
const maxReplyBytes = 1 << 20

// ChatClientInterface is the backend contract used by the widget
type ChatClientInterface interface {
	Send(ctx context.Context, message string) (string, error)
	Endpoint() string
	Close()
}

// ChatClient posts messages to the chat endpoint and returns the replies
type ChatClient struct {
	httpClient tls_client.HttpClient
	endpoint   string
	timeout    time.Duration
	mu         sync.RWMutex
	closed     bool
}

// Ensure ChatClient implements ChatClientInterface
var _ ChatClientInterface = (*ChatClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*ChatClient)

// WithEndpoint sets the URL messages are posted to
func WithEndpoint(endpoint string) ClientOption {
	return func(c *ChatClient) {
		c.endpoint = endpoint
	}
}

// WithTimeout bounds each exchange. Zero disables the timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ChatClient) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *ChatClient) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new ChatClient
func NewClient(opts ...ClientOption) (*ChatClient, error) {
	client := &ChatClient{
		endpoint: models.DefaultEndpoint,
		timeout:  time.Duration(models.DefaultTimeoutSeconds) * time.Second,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.endpoint == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}

	if client.httpClient == nil {
		// Deadlines come from the request context, so the transport itself has none.
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(0),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Endpoint returns the URL messages are posted to
func (c *ChatClient) Endpoint() string {
	return c.endpoint
}

// Close releases idle connections. Further sends fail.
func (c *ChatClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed reports whether Close has been called
func (c *ChatClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Send posts {"message": message} and returns the reply's "response" field.
// Every failure satisfies errors.Is(err, apierrors.ErrRequestFailed).
func (c *ChatClient) Send(ctx context.Context, message string) (string, error) {
	if c.IsClosed() {
		return "", apierrors.NewNetworkErrorWithEndpoint("send message", c.endpoint, fmt.Errorf("client is closed"))
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return "", apierrors.NewNetworkError("encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", apierrors.NewNetworkErrorWithEndpoint("create request", c.endpoint, err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := apierrors.FromContext(ctx); ctxErr != nil {
			return "", ctxErr
		}
		return "", apierrors.NewNetworkErrorWithEndpoint("send message", c.endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		if ctxErr := apierrors.FromContext(ctx); ctxErr != nil {
			return "", ctxErr
		}
		return "", apierrors.NewNetworkErrorWithEndpoint("read reply", c.endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apierrors.NewAPIErrorWithBody(resp.StatusCode, c.endpoint, "chat request failed", string(body))
	}

	return ParseReply(body)
}

// ParseReply extracts the "response" string from a reply body
func ParseReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("reply is not valid JSON", "")
	}

	result := gjson.GetBytes(body, "response")
	if !result.Exists() {
		return "", apierrors.NewParseError("missing field", "response")
	}
	if result.Type != gjson.String {
		return "", apierrors.NewParseError(fmt.Sprintf("expected string, got %s", result.Type), "response")
	}

	return result.String(), nil
}
