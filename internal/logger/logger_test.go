package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

// capture routes log output to a buffer for the duration of a test.
func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)

	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}
	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestVerboseLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("loaded %d items", 3) }, "[DEBUG] loaded 3 items\n"},
		{"info", func() { Info("wrote %s", "out.reqif") }, "[INFO] wrote out.reqif\n"},
		{"warn", func() { Warn("item %s has no text", "REQ001") }, "[WARN] item REQ001 has no text\n"},
		{"section", func() { Section("Serialize") }, "\n=== Serialize ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			if got := buf.String(); got != tt.want {
				t.Errorf("unexpected output: %q", got)
			}
		})
	}
}

func TestQuietWhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("debug")
	Info("info")
	Warn("warn")
	Section("section")

	if buf.Len() > 0 {
		t.Errorf("expected no output when verbose is disabled, got %q", buf.String())
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Error("export failed: %v", "boom")

	if got := buf.String(); got != "[ERROR] export failed: boom\n" {
		t.Errorf("unexpected error output: %q", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", n)
			_ = IsVerbose()
			SetVerbose(false)
		}(i)
	}
	wg.Wait()
}
