package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerSummary(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("discover")
	time.Sleep(time.Millisecond)
	timer.End(idx, "3 files")

	out := timer.Summary()
	if !strings.Contains(out, "discover") {
		t.Errorf("summary missing phase name: %q", out)
	}
	if !strings.Contains(out, "// 3 files") {
		t.Errorf("summary missing note: %q", out)
	}
	if !strings.Contains(out, "total") {
		t.Errorf("summary missing total: %q", out)
	}
}

func TestTimerEmpty(t *testing.T) {
	if out := NewTimer().Summary(); out != "" {
		t.Errorf("empty timer should render nothing, got %q", out)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(-1, "")
	timer.End(5, "")
	if out := timer.Summary(); out != "" {
		t.Errorf("no phases expected, got %q", out)
	}
}
