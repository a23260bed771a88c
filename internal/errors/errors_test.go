package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(500, "http://localhost/chat", "chat request failed")

	expected := "API error [500] at http://localhost/chat: chat request failed"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrRequestFailed) {
		t.Error("Expected APIError to match ErrRequestFailed")
	}

	noStatus := NewAPIError(0, "x", "y")
	if noStatus.Error() != "API error at x: y" {
		t.Errorf("Error() = %s", noStatus.Error())
	}
}

func TestAPIErrorWithBodyTruncates(t *testing.T) {
	body := strings.Repeat("a", maxBodyLen+100)
	err := NewAPIErrorWithBody(502, "ep", "bad gateway", body)

	if len(err.Body) != maxBodyLen {
		t.Errorf("len(Body) = %d, want %d", len(err.Body), maxBodyLen)
	}
	if GetResponseBody(err) != err.Body {
		t.Error("GetResponseBody did not return body")
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkErrorWithEndpoint("send message", "http://localhost/chat", cause)

	if !errors.Is(err, cause) {
		t.Error("Expected NetworkError to unwrap to cause")
	}
	if !errors.Is(err, ErrRequestFailed) {
		t.Error("Expected NetworkError to match ErrRequestFailed")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %s, want cause in message", err.Error())
	}

	plain := NewNetworkError("send message", cause)
	if plain.Error() != "network error during send message: connection refused" {
		t.Errorf("Error() = %s", plain.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	err := NewTimeoutError("")
	if err.Error() != "request timed out" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, ErrRequestFailed) {
		t.Error("Expected TimeoutError to match ErrRequestFailed")
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("missing field", "response")

	if !errors.Is(err, ErrRequestFailed) {
		t.Error("Expected ParseError to match ErrRequestFailed")
	}
	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("Expected ParseError to match ErrInvalidResponse")
	}
	if errors.Is(err, ErrNoContent) {
		t.Error("ParseError should not match ErrNoContent")
	}
}

func TestFromContext(t *testing.T) {
	if err := FromContext(context.Background()); err != nil {
		t.Errorf("FromContext(live) = %v, want nil", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := FromContext(ctx)
	if !IsTimeoutError(err) {
		t.Fatalf("FromContext(cancelled) = %T, want *TimeoutError", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("Expected error to unwrap to context.Canceled")
	}
}

func TestHelpersThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("send: %w", NewAPIError(404, "ep", "not found"))

	if GetHTTPStatus(wrapped) != 404 {
		t.Errorf("GetHTTPStatus() = %d, want 404", GetHTTPStatus(wrapped))
	}
	if GetEndpoint(wrapped) != "ep" {
		t.Errorf("GetEndpoint() = %q, want ep", GetEndpoint(wrapped))
	}
	if GetHTTPStatus(errors.New("x")) != 0 {
		t.Error("Expected 0 status for plain error")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"timeout", NewTimeoutError("x"), "timeout"},
		{"network", NewNetworkError("op", errors.New("x")), "network"},
		{"status", NewAPIError(500, "ep", "x"), "status"},
		{"malformed", NewParseError("x", ""), "malformed"},
		{"unknown", errors.New("x"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}
