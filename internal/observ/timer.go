package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed step of a migration run.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phase durations for a single run. Not safe for
// concurrent use; batch phases are marked from the coordinating
// goroutine only.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index. The note ends up in the summary.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Summary renders all phases plus a total, one line each.
func (t *Timer) Summary() string {
	if len(t.phases) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("timings:\n")
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		fmt.Fprintf(&b, "  %-12s %7.2f ms", p.Name, millis(p.Dur))
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  %-12s %7.2f ms\n", "total", millis(total))
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
