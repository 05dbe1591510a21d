package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Session owns the profiler state of one CLI invocation. Zero value means
// nothing enabled; Stop is always safe to call.
type Session struct {
	cpuFile *os.File
	memPath string
	stopped bool
}

// Start enables the requested profilers. Empty paths disable the
// respective profiler.
func Start(cpuPath, memPath string) (*Session, error) {
	s := &Session{memPath: memPath}
	if cpuPath != "" {
		f, err := os.Create(cpuPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		s.cpuFile = f
	}
	return s, nil
}

// Stop ends CPU profiling and, when requested, writes a heap profile.
// Calling it more than once is a no-op.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		_ = s.cpuFile.Close()
		s.cpuFile = nil
	}
	if s.memPath != "" {
		return writeHeap(s.memPath)
	}
	return nil
}

func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heap profile: %w", err)
	}
	defer func() { _ = f.Close() }()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return nil
}
