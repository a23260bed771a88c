package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	apierrors "github.com/diogo/chatwidget/internal/errors"
)

func TestSpinnerLifecycle(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Waiting")
	s.start()
	time.Sleep(200 * time.Millisecond)
	s.halt()

	// A second stop must not panic
	s.stopOnce()

	out := buf.String()
	if !strings.Contains(out, "Waiting") {
		t.Errorf("spinner output should contain its message, got %q", out)
	}
	if !strings.HasSuffix(out, "\r\033[K\033[?25h") {
		t.Errorf("spinner should clear the line and restore the cursor, got %q", out)
	}
}

func TestFormatErrorMessage_Nil(t *testing.T) {
	if got := formatErrorMessage(nil, "ctx"); got != "" {
		t.Fatalf("expected empty for nil error, got %s", got)
	}
}

func TestFormatErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "api error with body",
			err:  apierrors.NewAPIErrorWithBody(500, "http://x/chat", "request failed", "detailed body"),
			want: []string{"HTTP Status: 500", "Endpoint: http://x/chat", "detailed body"},
		},
		{
			name: "network",
			err:  apierrors.NewNetworkErrorWithEndpoint("send", "http://x/chat", errors.New("refused")),
			want: []string{"Endpoint: http://x/chat", "reachable"},
		},
		{
			name: "timeout",
			err:  apierrors.NewTimeoutError("deadline exceeded"),
			want: []string{"timed out"},
		},
		{
			name: "malformed",
			err:  apierrors.NewParseError("missing response field", "response"),
			want: []string{"response"},
		},
		{
			name: "plain",
			err:  errors.New("something else"),
			want: []string{"Failed: something else"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatErrorMessage(tt.err, "Failed")
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}
