/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/hat/apis"
	"dirpx.dev/hat/config"
	uref "dirpx.dev/hat/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("hat(registry): nil reflect.Type provided")
	// ErrEmptyLabel is returned when an empty label is provided.
	ErrEmptyLabel = errors.New("hat(registry): empty label provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different label.
	ErrConflictingRegistration = errors.New("hat(registry): conflicting type registration")
	// ErrLabelTaken indicates that the label is already registered for
	// another type. Labels index nodes, so two types may never share one.
	ErrLabelTaken = errors.New("hat(registry): label already registered for another type")
)

// New constructs a Registry that normalizes types according to cfg.
// Only MaxDepth is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps reflect.Type to registered label.
	m sync.Map // map[reflect.Type]string
	// owners maps a label back to its type; written under mu.
	owners map[string]reflect.Type
	// count tracks the number of registered entries.
	count int
}

// Register associates the pointer-normalized type of t with label.
// It is idempotent for the same (type,label) pair.
func (r *registry) Register(t reflect.Type, label string) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if label == "" {
		return ErrEmptyLabel
	}

	b, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(b); ok {
		if old.(string) == label {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(b); ok {
		if old.(string) == label {
			return nil
		}
		return ErrConflictingRegistration
	}
	if owner, ok := r.owners[label]; ok && owner != b {
		return ErrLabelTaken
	}

	if r.owners == nil {
		r.owners = make(map[string]reflect.Type)
	}
	r.owners[label] = b
	r.m.Store(b, label)
	r.count++
	return nil
}

// Lookup returns the label for a type if present.
func (r *registry) Lookup(t reflect.Type) (label string, ok bool) {
	if t == nil {
		return "", false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return "", false
	}
	if v, ok := r.m.Load(nt); ok {
		return v.(string), true
	}
	return "", false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:  key.(reflect.Type),
			Label: value.(string),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

