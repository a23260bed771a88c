package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/diogo/chatwidget/internal/config"
)

func TestMarkdownWithWidth(t *testing.T) {
	out, err := MarkdownWithWidth("# Title\n\nSome **bold** text", 60)
	if err != nil {
		t.Fatalf("MarkdownWithWidth() returned error: %v", err)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "bold") {
		t.Errorf("rendered output missing content: %q", out)
	}
	if strings.Contains(out, "**") {
		t.Errorf("markdown markers not rendered: %q", out)
	}
}

func TestReplyTrimsTrailingNewlines(t *testing.T) {
	out := Reply("hello", DefaultOptions().WithStyle("notty"))
	if strings.HasSuffix(out, "\n") {
		t.Errorf("Reply() kept trailing newline: %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("Reply() = %q", out)
	}
}

func TestReplyFallsBackOnBadStyle(t *testing.T) {
	out := Reply("plain **text**", DefaultOptions().WithStyle("/does/not/exist.json"))
	if out != "plain **text**" {
		t.Errorf("Reply() = %q, want raw content", out)
	}
}

func TestPoolReuse(t *testing.T) {
	ClearCache()
	opts := DefaultOptions().WithWidth(40)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("*x*", opts); err != nil {
				t.Errorf("Markdown() returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if CacheSize() != 1 {
		t.Errorf("CacheSize() = %d, want 1", CacheSize())
	}
}

func TestWithWidthClamps(t *testing.T) {
	if got := DefaultOptions().WithWidth(-5).Width; got != 1 {
		t.Errorf("Width = %d, want 1", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")
	md := config.MarkdownConfig{Style: "light", EnableEmoji: false, PreserveNewLines: true}

	opts := OptionsFromConfig(md)
	if opts.Style != "light" || opts.EnableEmoji || !opts.PreserveNewLines {
		t.Errorf("OptionsFromConfig() = %+v", opts)
	}

	t.Setenv("GLAMOUR_STYLE", "notty")
	if got := OptionsFromConfig(md).Style; got != "notty" {
		t.Errorf("Style = %s, want env override", got)
	}
}

func TestTUIThemes(t *testing.T) {
	defer SetTUITheme(DefaultTUITheme)

	names := TUIThemeNames()
	if len(names) != 3 {
		t.Fatalf("TUIThemeNames() = %v", names)
	}
	for _, name := range names {
		if !SetTUITheme(name) {
			t.Errorf("SetTUITheme(%s) = false", name)
		}
		if GetTUITheme().Name != name {
			t.Errorf("GetTUITheme().Name = %s, want %s", GetTUITheme().Name, name)
		}
	}

	if SetTUITheme("nope") {
		t.Error("SetTUITheme(unknown) = true")
	}
}
