// Package session holds the in-memory application state for one run of the
// tool: the ordered list of registered datasets and the cached analysis
// result attached to each. The session is owned by the interactive layer and
// is never handed to a worker; there is no persistence beyond the process.
package session

import (
	"sync"

	"github.com/google/uuid"

	"ctqa/pkg/analysis"
)

// DatasetReference is one registered dataset: a file-system path to a slice
// archive plus the optional cached result of its most recent successful run.
type DatasetReference struct {
	// ID uniquely identifies the reference within the session.
	ID string

	// Path is the archive location on disk.
	Path string

	// result is the cached analysis result, nil until a run succeeds.
	result *analysis.Result
}

// Result returns the cached analysis result, or nil if no run has completed
// for this dataset.
func (d *DatasetReference) Result() *analysis.Result {
	return d.result
}

// HasResult reports whether a completed run is attached.
func (d *DatasetReference) HasResult() bool {
	return d.result != nil
}

// Session is the mutable set of registered datasets.
type Session struct {
	mu       sync.Mutex
	datasets []*DatasetReference
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// Register adds a dataset path to the session and returns its reference.
// The same path may be registered more than once; each registration is a
// distinct reference.
func (s *Session) Register(path string) *DatasetReference {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := &DatasetReference{
		ID:   uuid.NewString(),
		Path: path,
	}
	s.datasets = append(s.datasets, ref)
	return ref
}

// Remove deletes the reference with the given ID. Returns false when the ID
// is not registered.
func (s *Session) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, ref := range s.datasets {
		if ref.ID == id {
			s.datasets = append(s.datasets[:i], s.datasets[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the reference with the given ID, or nil.
func (s *Session) Find(id string) *DatasetReference {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ref := range s.datasets {
		if ref.ID == id {
			return ref
		}
	}
	return nil
}

// Datasets returns the registered references in registration order.
func (s *Session) Datasets() []*DatasetReference {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*DatasetReference, len(s.datasets))
	copy(out, s.datasets)
	return out
}

// AttachResult replaces the cached result of the given dataset with a newly
// completed one. A new run replaces the previous result entirely; there is
// no merging. Returns false when the ID is not registered.
//
// A failed run must NOT call this: failure leaves any prior result in place.
func (s *Session) AttachResult(id string, result *analysis.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ref := range s.datasets {
		if ref.ID == id {
			ref.result = result
			return true
		}
	}
	return false
}
