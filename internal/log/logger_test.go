package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_StampsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithHandler(ComponentStore, slog.NewTextHandler(&buf, nil))

	logger.Info("Fetch failed", FieldSlice, "balance_overview")

	out := buf.String()
	if !strings.Contains(out, FieldComponent+"="+ComponentStore) {
		t.Errorf("record missing component field: %s", out)
	}
	if !strings.Contains(out, FieldSlice+"=balance_overview") {
		t.Errorf("record missing caller field: %s", out)
	}
	if !strings.Contains(out, "Fetch failed") {
		t.Errorf("record missing message: %s", out)
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithHandler(ComponentApp, slog.NewTextHandler(&buf, nil))

	sub := logger.WithComponent(ComponentCache)
	if sub.Component() != ComponentCache {
		t.Fatalf("Component() = %q, want %q", sub.Component(), ComponentCache)
	}

	sub.Warn("Sweep finished")
	if !strings.Contains(buf.String(), FieldComponent+"="+ComponentCache) {
		t.Errorf("sub-logger kept the parent component: %s", buf.String())
	}
}

func TestLogger_WithCarriesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithHandler(ComponentAPI, slog.NewTextHandler(&buf, nil))

	logger.With(FieldEndpoint, "/invoices").Info("Request completed")

	out := buf.String()
	if !strings.Contains(out, FieldEndpoint+"=/invoices") {
		t.Errorf("record missing carried attr: %s", out)
	}
	if !strings.Contains(out, FieldComponent+"="+ComponentAPI) {
		t.Errorf("record missing component field: %s", out)
	}
}
