package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerCarriesRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "api-test", Level: ParseLevel("debug"), Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-team-42")
	log.Error(ctx, "membership write failed", errors.New("constraint violated"))

	entry := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte(`"request_id"`)) {
		t.Fatalf("expected request_id field; entry=%s", entry)
	}
	if !bytes.Contains(buf.Bytes(), []byte("req-team-42")) {
		t.Fatalf("expected request id value; entry=%s", entry)
	}
}

func TestLoggerCarriesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "api-test", Level: ParseLevel("debug"), Output: buf})

	ctx := log.WithFields(context.Background(), map[string]any{"user_id": "u-1", "team_id": "t-1"})
	log.Info(ctx, "invite accepted")

	for _, want := range []string{`"user_id"`, `"team_id"`, "invite accepted"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Fatalf("expected %s in entry %s", want, buf.String())
		}
	}
}

func TestParseLevelFallsBackOnUnknown(t *testing.T) {
	if lvl := ParseLevel(""); lvl != zerolog.InfoLevel {
		t.Fatalf("empty level should fall back to info, got %v", lvl)
	}
	if lvl := ParseLevel("shouting"); lvl != zerolog.InfoLevel {
		t.Fatalf("unknown level should fall back to info, got %v", lvl)
	}
	if lvl := ParseLevel("warn"); lvl != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %v", lvl)
	}
}
