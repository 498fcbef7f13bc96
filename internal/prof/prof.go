// Package prof wires the standard profilers into the CLI.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Session owns the profilers started for one command invocation.
type Session struct {
	cpu      *os.File
	trace    *os.File
	memPath  string
	finished bool
}

// Start enables the requested profilers. Empty paths disable the
// corresponding profiler; a nil session is returned when nothing was asked
// for, and Stop on a nil session is a no-op.
func Start(cpuPath, memPath, tracePath string) (*Session, error) {
	if cpuPath == "" && memPath == "" && tracePath == "" {
		return nil, nil
	}
	s := &Session{memPath: memPath}

	if cpuPath != "" {
		f, err := os.Create(cpuPath)
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		s.cpu = f
	}

	if tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			s.Stop()
			return nil, err
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.Stop()
			return nil, fmt.Errorf("failed to start trace: %w", err)
		}
		s.trace = f
	}

	return s, nil
}

// Stop ends the active profilers and writes the heap profile, if requested.
// Safe to call multiple times.
func (s *Session) Stop() {
	if s == nil || s.finished {
		return
	}
	s.finished = true

	if s.trace != nil {
		trace.Stop()
		_ = s.trace.Close()
		s.trace = nil
	}
	if s.cpu != nil {
		pprof.StopCPUProfile()
		_ = s.cpu.Close()
		s.cpu = nil
	}
	if s.memPath != "" {
		if err := writeMem(s.memPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write heap profile: %v\n", err)
		}
	}
}

func writeMem(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
