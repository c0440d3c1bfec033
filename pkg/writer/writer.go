// Package writer provides the output sinks generated files are written to:
// a real filesystem, stdout, an in-memory store for tests and a no-op sink
// for dry runs.
package writer

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Writer persists one generated file.
type Writer interface {
	Write(path string, content []byte) error
}

// Comparer is implemented by writers that can tell whether a path already
// holds the given content, letting the runner skip unchanged files.
type Comparer interface {
	MatchesExisting(path string, content []byte) bool
}

// FSWriter writes files to an afero filesystem, creating parent
// directories as needed.
type FSWriter struct {
	fs afero.Fs
}

func NewFSWriter(fsys afero.Fs) *FSWriter {
	return &FSWriter{fs: fsys}
}

func (w *FSWriter) Write(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create directory %s", dir)
		}
	}
	if err := afero.WriteFile(w.fs, path, content, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func (w *FSWriter) MatchesExisting(path string, content []byte) bool {
	existing, err := afero.ReadFile(w.fs, path)
	return err == nil && bytes.Equal(existing, content)
}

// MemoryWriter collects written files in memory. Safe for concurrent use.
type MemoryWriter struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: map[string][]byte{}}
}

func (w *MemoryWriter) Write(path string, content []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	buf := make([]byte, len(content))
	copy(buf, content)
	w.files[path] = buf
	return nil
}

func (w *MemoryWriter) MatchesExisting(path string, content []byte) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	existing, ok := w.files[path]
	return ok && bytes.Equal(existing, content)
}

// Files returns all written paths, sorted.
func (w *MemoryWriter) Files() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (w *MemoryWriter) Get(path string) ([]byte, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	content, ok := w.files[path]
	return content, ok
}

func (w *MemoryWriter) GetString(path string) string {
	content, _ := w.Get(path)
	return string(content)
}

func (w *MemoryWriter) Contains(path string) bool {
	_, ok := w.Get(path)
	return ok
}

func (w *MemoryWriter) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.files)
}

// StdoutWriter prints every file to a stream with a path banner, for the
// CLI --stdout mode.
type StdoutWriter struct {
	out io.Writer
}

func NewStdoutWriter(out io.Writer) *StdoutWriter {
	return &StdoutWriter{out: out}
}

func (w *StdoutWriter) Write(path string, content []byte) error {
	if _, err := fmt.Fprintf(w.out, "// ==== %s ====\n", path); err != nil {
		return err
	}
	_, err := w.out.Write(content)
	return err
}

// NoopWriter discards everything, for dry runs.
type NoopWriter struct{}

func (NoopWriter) Write(string, []byte) error {
	return nil
}
