package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestRedactsSecrets(t *testing.T) {
	l, logs := observed()
	l.Info("calling provider", "api_key", "sk-123", "Authorization", "Bearer x", "model", "claude")

	entry := logs.All()[0]
	fields := entry.ContextMap()
	if fields["api_key"] != "[REDACTED]" {
		t.Errorf("api_key = %v, want redacted", fields["api_key"])
	}
	if fields["Authorization"] != "[REDACTED]" {
		t.Errorf("Authorization = %v, want redacted", fields["Authorization"])
	}
	if fields["model"] != "claude" {
		t.Errorf("model = %v, want claude", fields["model"])
	}
}

func TestHashesUserID(t *testing.T) {
	l, logs := observed()
	l.With("user_id", "kid-42").Warn("store write failed")

	got, _ := logs.All()[0].ContextMap()["user_id"].(string)
	if !strings.HasPrefix(got, "hash:") || strings.Contains(got, "kid-42") {
		t.Errorf("user_id = %q, want hashed", got)
	}
	if hashValue("kid-42") != got {
		t.Error("hash is not stable")
	}
}

func TestOddKVKeepsTrailingValue(t *testing.T) {
	got := sanitizeKVs([]any{"a", 1, "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Errorf("sanitizeKVs = %v", got)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("ignored", "k", "v")
	l.Sync()
}
