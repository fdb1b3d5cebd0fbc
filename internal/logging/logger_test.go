package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_levelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo)

	l.Debug("hidden", "k", "v")
	l.Info("shown", "manifest", "zag.json")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "manifest=zag.json") {
		t.Errorf("missing info record: %s", out)
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelDebug)
	ctx := WithLogger(context.Background(), l)

	FromContext(ctx).Debug("from context")
	if !strings.Contains(buf.String(), "from context") {
		t.Errorf("logger from context did not write: %q", buf.String())
	}
}

func TestFromContext_default(t *testing.T) {
	// Must not panic and must be usable.
	FromContext(context.Background()).Info("dropped")
	Or(nil).Info("dropped")
}
