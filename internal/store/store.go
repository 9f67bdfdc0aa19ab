// Package store is the reactive data layer: a JSON document addressed by
// gjson paths that notifies subscribers after every write.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var ErrInvalidDocument = errors.New("store: invalid json document")

// Listener receives the path that was written.
type Listener func(path string)

type Store struct {
	mu        sync.RWMutex
	doc       string
	nextID    int
	listeners map[int]Listener
}

func New(doc string) (*Store, error) {
	if strings.TrimSpace(doc) == "" {
		doc = "{}"
	}
	if !gjson.Valid(doc) {
		return nil, ErrInvalidDocument
	}
	return &Store{doc: doc, listeners: make(map[int]Listener)}, nil
}

func (s *Store) Get(path string) gjson.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if path == "" {
		return gjson.Parse(s.doc)
	}
	return gjson.Get(s.doc, path)
}

func (s *Store) Snapshot() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Set writes value (marshalled as JSON) at path.
func (s *Store) Set(path string, value any) error {
	return s.write(path, func(doc string) (string, error) {
		return sjson.Set(doc, path, value)
	})
}

// SetRaw writes an already encoded JSON value at path.
func (s *Store) SetRaw(path string, raw string) error {
	if !gjson.Valid(raw) {
		return fmt.Errorf("%w: value for %s", ErrInvalidDocument, path)
	}
	return s.write(path, func(doc string) (string, error) {
		return sjson.SetRaw(doc, path, raw)
	})
}

func (s *Store) Delete(path string) error {
	return s.write(path, func(doc string) (string, error) {
		return sjson.Delete(doc, path)
	})
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) write(path string, apply func(string) (string, error)) error {
	if path == "" {
		return errors.New("store: empty path")
	}
	s.mu.Lock()
	next, err := apply(s.doc)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	s.doc = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(path)
	}
	return nil
}

// Covers reports whether a write at written may have changed the value at
// path: one is a prefix of the other on a path-segment boundary.
func Covers(written, path string) bool {
	if written == path {
		return true
	}
	return strings.HasPrefix(path, written+".") || strings.HasPrefix(written, path+".")
}
