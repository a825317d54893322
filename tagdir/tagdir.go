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

// Package tagdir derives and caches the label chains of hat types.
//
// A chain lists the labels of a type's hat ancestry, root first, ending with
// the type's own label. Labels are unique across the directory: a type whose
// name is empty, too short, or already claimed by another type receives a
// synthetic label instead. Chains are cached for the life of the directory
// and never renumbered, and every ancestor's chain is a prefix of its
// descendants' chains.
package tagdir

import (
	"reflect"
	"slices"
	"strconv"
	"sync"

	"dirpx.dev/hat/apis"
	"dirpx.dev/hat/internal/obs"
	uref "dirpx.dev/hat/utils/reflect"
)

// Source supplies the configuration and resolver in effect at derivation
// time.
type Source func() (apis.Config, apis.Resolver)

// Directory is a concurrent-safe type -> label chain cache.
type Directory struct {
	sentinel reflect.Type
	iface    reflect.Type
	source   Source

	// chains is read lock-free; writes happen under mu.
	chains sync.Map // map[reflect.Type][]string

	mu      sync.Mutex
	claimed map[string]reflect.Type
	counter uint64
	size    int
}

// New returns an empty directory. Lineage walks stop at sentinel and only
// follow embedded types whose pointer implements iface.
func New(sentinel, iface reflect.Type, source Source) *Directory {
	return &Directory{
		sentinel: sentinel,
		iface:    iface,
		source:   source,
		claimed:  make(map[string]reflect.Type),
	}
}

// LabelsFor returns the chain of v's dynamic type, deriving and caching it on
// first use. It returns nil for a nil v or when the lineage is too deep.
// When the dynamic type itself is first derived here, its own label is
// resolved from v, so a HatLabel that depends on the instance is honoured
// for the first instance seen.
func (d *Directory) LabelsFor(v any) []string {
	if v == nil {
		return nil
	}
	chain, err := d.derive(reflect.TypeOf(v), v)
	if err != nil {
		obs.Logger().Warn().Err(err).Type("type", v).Msg("label chain not derived")
		return nil
	}
	return chain
}

// LabelsForType returns the chain of t, deriving and caching it on first use.
// The result is a copy the caller may modify.
func (d *Directory) LabelsForType(t reflect.Type) ([]string, error) {
	return d.derive(t, nil)
}

func (d *Directory) derive(t reflect.Type, v any) ([]string, error) {
	cfg, res := d.source()
	base, err := uref.Normalize(t, cfg)
	if err != nil {
		return nil, err
	}
	if c, ok := d.chains.Load(base); ok {
		return slices.Clone(c.([]string)), nil
	}

	lineage, err := uref.Lineage(base, d.sentinel, d.iface, cfg)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Find the nearest ancestor (or t itself) that is already cached.
	var prefix []string
	start := 0
	for i := len(lineage) - 1; i >= 0; i-- {
		if c, ok := d.chains.Load(lineage[i]); ok {
			prefix = c.([]string)
			start = i + 1
			break
		}
	}

	for _, lt := range lineage[start:] {
		name := ""
		switch {
		case res == nil:
		case v != nil && lt == base:
			name = res.Resolve(v, cfg)
		default:
			name = res.ResolveType(lt, cfg)
		}
		own := d.own(lt, name, cfg)
		next := make([]string, len(prefix), len(prefix)+1)
		copy(next, prefix)
		prefix = append(next, own)
		if _, loaded := d.chains.LoadOrStore(lt, prefix); !loaded {
			d.size++
		}
		obs.Logger().Debug().
			Stringer("type", lt).
			Strs("chain", prefix).
			Msg("label chain derived")
	}
	return slices.Clone(prefix), nil
}

// own claims name as the own label of t, or a synthetic label when name is
// unusable. Called with mu held.
func (d *Directory) own(t reflect.Type, name string, cfg apis.Config) string {
	if owner, taken := d.claimed[name]; name != "" && len(name) >= cfg.MinLabelLength && (!taken || owner == t) {
		d.claimed[name] = t
		return name
	}
	for {
		d.counter++
		label := cfg.SyntheticPrefix + name + strconv.FormatUint(d.counter, 10)
		if _, taken := d.claimed[label]; taken {
			continue
		}
		d.claimed[label] = t
		obs.Logger().Debug().
			Stringer("type", t).
			Str("name", name).
			Str("label", label).
			Msg("synthetic label issued")
		return label
	}
}

// Lookup returns the cached chain of t without deriving it.
func (d *Directory) Lookup(t reflect.Type) ([]string, bool) {
	if t == nil {
		return nil, false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	c, ok := d.chains.Load(t)
	if !ok {
		return nil, false
	}
	return slices.Clone(c.([]string)), true
}

// Implementing returns, sorted, the own labels of every cached type whose
// value or pointer implements iface.
func (d *Directory) Implementing(iface reflect.Type) []string {
	if iface == nil || iface.Kind() != reflect.Interface {
		return nil
	}
	var out []string
	d.chains.Range(func(key, value any) bool {
		t := key.(reflect.Type)
		if t.Implements(iface) || reflect.PointerTo(t).Implements(iface) {
			c := value.([]string)
			out = append(out, c[len(c)-1])
		}
		return true
	})
	slices.Sort(out)
	return out
}

// Len returns the number of cached types.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.size
}
