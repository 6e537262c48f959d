package processor

import (
	"fmt"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Artifact is one unit of generated source text along with the name it is
// registered under.
type Artifact struct {
	Name string
	Text []byte
	// Generator is the name of the processor that produced the artifact.
	Generator string
}

// Sink receives generated artifacts. It is the boundary between the engine
// and the host compilation: the engine calls AddSource once per artifact and
// never retains the text afterwards. Name collisions are the sink's concern;
// the host implementations in this package reject them with
// ErrDuplicateArtifact.
type Sink interface {
	AddSource(name string, text []byte) error
}

// MemorySink is a Sink that keeps artifacts in memory, in registration order.
// A MemorySink represents a single pass; use a new one for every pass. It is
// safe for concurrent use.
type MemorySink struct {
	mu        sync.Mutex
	artifacts []Artifact
	index     map[string]int
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{index: map[string]int{}}
}

// AddSource implements Sink.
func (s *MemorySink) AddSource(name string, text []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		s.index = map[string]int{}
	}
	if _, ok := s.index[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateArtifact, name)
	}
	s.index[name] = len(s.artifacts)
	s.artifacts = append(s.artifacts, Artifact{Name: name, Text: append([]byte(nil), text...)})
	return nil
}

// Artifacts returns all registered artifacts, in registration order.
func (s *MemorySink) Artifacts() []Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Artifact(nil), s.artifacts...)
}

// Get returns the text of the artifact with the given name.
func (s *MemorySink) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.artifacts[i].Text, true
}

// FilesystemSink is a Sink that writes every artifact as a file named after
// the artifact into the root of a billy filesystem, truncating any existing
// file. Like MemorySink, it represents a single pass: registering the same
// name twice is an error even though the file could be overwritten.
type FilesystemSink struct {
	fs      billy.Filesystem
	mu      sync.Mutex
	seen    map[string]struct{}
	written []string
}

// NewFilesystemSink returns a sink that writes into the given filesystem.
func NewFilesystemSink(fs billy.Filesystem) *FilesystemSink {
	return &FilesystemSink{fs: fs, seen: map[string]struct{}{}}
}

// AddSource implements Sink.
func (s *FilesystemSink) AddSource(name string, text []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateArtifact, name)
	}
	s.seen[name] = struct{}{}
	if err := util.WriteFile(s.fs, name, text, 0666); err != nil {
		return fmt.Errorf("could not write %s: %w", s.fs.Join(s.fs.Root(), name), err)
	}
	s.written = append(s.written, name)
	return nil
}

// Written returns the names of all files written so far, in order.
func (s *FilesystemSink) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.written...)
}

// bufferSink collects the artifacts of a single processor so that they can be
// flushed to the real sink in a deterministic order.
type bufferSink struct {
	generator string
	artifacts []Artifact
}

func (b *bufferSink) AddSource(name string, text []byte) error {
	b.artifacts = append(b.artifacts, Artifact{Name: name, Text: text, Generator: b.generator})
	return nil
}
