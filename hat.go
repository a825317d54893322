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

package hat

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"dirpx.dev/hat/apis"
	"dirpx.dev/hat/builder"
	"dirpx.dev/hat/config"
	"dirpx.dev/hat/internal/obs"
	"dirpx.dev/hat/tagdir"
)

// init initializes the global state.
func init() {
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil)
	s.bld = b
	st.Store(s)
}

var (
	// ErrNilRegistry is raised when a builder returns a nil registry.
	ErrNilRegistry = errors.New("hat: builder returned nil registry")
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.New("hat: builder returned nil resolver")
)

var (
	hatType  = reflect.TypeOf((*apis.Hat)(nil)).Elem()
	baseType = reflect.TypeOf(Base{})
)

// directory caches label chains for the life of the process. It reads the
// configuration and resolver in effect when a type is first derived; later
// reconfiguration never renames a cached type.
var directory = tagdir.New(baseType, hatType, func() (apis.Config, apis.Resolver) {
	s := st.Load()
	return s.cfg, s.res
})

// Labels returns the label chain of v's type, root first.
func Labels(v apis.Hat) []string {
	return directory.LabelsFor(v)
}

// LabelsOf returns the cached label chain of t, if any hat of t has been
// worn or labelled.
func LabelsOf(t reflect.Type) ([]string, bool) {
	return directory.Lookup(t)
}

// RegisterLabel fixes the own label of hat type t. It only affects types
// whose chain has not been derived yet.
func RegisterLabel(t reflect.Type, label string) error {
	return st.Load().reg.Register(t, label)
}

// SetLogger installs the logger used by every hat package.
func SetLogger(l zerolog.Logger) {
	obs.SetLogger(l)
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged. A nil registry
// or resolver is rebuilt through the builder unless pinned.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}
	if reg != nil {
		next.reg, next.preg = reg, true
	}
	if res != nil {
		next.res, next.pres = res, true
	}
	publish(old, &next)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds the unpinned
// registry and resolver.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.cfg = cfg
	publish(old, &next)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces and pins the global registry. The resolver is rebuilt
// over it unless pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.reg, next.preg = reg, true
	publish(old, &next)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver replaces and pins the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.res, next.pres = res, true
	st.Store(&next)
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds the unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.bld = b
	publish(old, &next)
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry keeps the global registry across rebuilds.
func PinRegistry() { setPins(func(s *state) { s.preg = true }) }

// UnpinRegistry lets the next rebuild replace the global registry.
func UnpinRegistry() { setPins(func(s *state) { s.preg = false }) }

// IsResolverPinned returns whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver keeps the global resolver across rebuilds.
func PinResolver() { setPins(func(s *state) { s.pres = true }) }

// UnpinResolver lets the next rebuild replace the global resolver.
func UnpinResolver() { setPins(func(s *state) { s.pres = false }) }

func setPins(fn func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	fn(&next)
	st.Store(&next)
}

// publish rebuilds the unpinned layers of next from old and stores it.
// Called with buildMu held.
func publish(old, next *state) {
	if !next.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
	}
	if !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res)
	}

	// Ensure non-nil reg and res.
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}

	st.Store(next)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable once published via st.Store; writers copy, modify and swap.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg holds explicit label registrations.
	reg apis.Registry
	// res resolves own labels of hat types.
	res apis.Resolver
	// bld rebuilds reg and res on reconfiguration.
	bld apis.Builder
	// preg indicates whether reg is pinned.
	preg bool
	// pres indicates whether res is pinned.
	pres bool
}
