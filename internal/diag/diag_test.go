package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelGating(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.Debugf("should not appear")
	if buf.Len() != 0 {
		t.Fatal("Debugf should be suppressed at LevelInfo")
	}

	l.Infof("hello %d", 1)
	if !strings.Contains(buf.String(), "hello 1") {
		t.Fatal("Infof should be emitted at LevelInfo")
	}
}

func TestWarnfAlwaysEmitted(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.Warnf("uh oh")
	if !strings.Contains(buf.String(), "uh oh") {
		t.Fatal("Warnf should be emitted even at the lowest level")
	}
}

func TestEnabled(t *testing.T) {
	l := New(&bytes.Buffer{}, LevelDebug)
	if !l.Enabled(LevelDebug) {
		t.Fatal("LevelDebug should be enabled")
	}
	if l.Enabled(LevelTrace) {
		t.Fatal("LevelTrace should not be enabled at LevelDebug")
	}
}

func TestSetLevelRaisesGate(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.Tracef("invisible")
	if buf.Len() != 0 {
		t.Fatal("Tracef should be suppressed at LevelWarn")
	}
	l.SetLevel(LevelTrace)
	l.Tracef("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatal("Tracef should be emitted after raising the level")
	}
}
