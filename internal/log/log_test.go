package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("messages below WARN leaked: %q", out)
	}
	if !strings.Contains(out, "WARN: warn 3") || !strings.Contains(out, "ERROR: error 4") {
		t.Errorf("missing messages: %q", out)
	}

	buf.Reset()
	l.SetLevel(LevelNone)
	l.Errorf("quiet")
	if buf.Len() != 0 {
		t.Errorf("NONE should drop everything, got %q", buf.String())
	}
}

func TestLevelFromString(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"warning": LevelWarn,
		"Error":   LevelError,
		"none":    LevelNone,
		"bogus":   LevelInfo,
	}
	for in, expected := range tests {
		if l := LevelFromString(in); l != expected {
			t.Errorf("LevelFromString(%q) = %v, want %v", in, l, expected)
		}
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil).Level() != LevelNone {
		t.Error("nil logger should discard")
	}
}
