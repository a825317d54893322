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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/hat/apis"
	"dirpx.dev/hat/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTooDeep indicates that pointer unwrapping or a lineage walk
	// exceeded the configured MaxDepth.
	ErrReflectTooDeep = errors.New("reflect: type nesting exceeds max depth")
)

// Normalize strips pointer indirections and returns the type hats are
// labelled by. *Item, **Item and Item all normalize to Item.
//
// If cfg.MaxDepth <= 0, DefaultMaxDepth is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	for i := 0; t.Kind() == reflect.Pointer; i++ {
		if i >= maxDepth(cfg) {
			return nil, ErrReflectTooDeep
		}
		t = t.Elem()
	}
	return t, nil
}

// Parent returns the hat type t directly embeds, if any.
//
// The parent is the first anonymous field whose (pointer-stripped) type is a
// struct with a pointer that implements iface. Reaching sentinel, the root
// every hat embeds, means t has no parent.
func Parent(t, sentinel, iface reflect.Type) (reflect.Type, bool) {
	_, ft, ok := parentField(t, sentinel, iface)
	return ft, ok
}

func parentField(t, sentinel, iface reflect.Type) (int, reflect.Type, bool) {
	if t == nil || t.Kind() != reflect.Struct || t == sentinel {
		return -1, nil, false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() != reflect.Struct {
			continue
		}
		if ft == sentinel {
			return -1, nil, false
		}
		if reflect.PointerTo(ft).Implements(iface) {
			return i, ft, true
		}
	}
	return -1, nil, false
}

// Lineage returns the hat ancestry of t, root first and ending with t itself
// (pointer-normalized).
func Lineage(t, sentinel, iface reflect.Type, cfg apis.Config) ([]reflect.Type, error) {
	base, err := Normalize(t, cfg)
	if err != nil {
		return nil, err
	}
	chain := []reflect.Type{base}
	for cur := base; ; {
		p, ok := Parent(cur, sentinel, iface)
		if !ok {
			break
		}
		if len(chain) >= maxDepth(cfg) {
			return nil, ErrReflectTooDeep
		}
		chain = append(chain, p)
		cur = p
	}
	// Collected concrete-first; callers want root-first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Embedded follows v's lineage down to target and returns a pointer to the
// embedded target value. v must be a non-nil pointer to a struct. The second
// result is false when target is not in the lineage, when an embedded pointer
// on the way is nil, or when the value is unexported.
func Embedded(v reflect.Value, target, sentinel, iface reflect.Type, cfg apis.Config) (reflect.Value, bool) {
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() {
		return reflect.Value{}, false
	}
	cur := v.Elem()
	for depth := 0; depth < maxDepth(cfg); depth++ {
		if cur.Type() == target {
			p := cur.Addr()
			return p, p.CanInterface()
		}
		i, _, ok := parentField(cur.Type(), sentinel, iface)
		if !ok {
			return reflect.Value{}, false
		}
		f := cur.Field(i)
		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				return reflect.Value{}, false
			}
			f = f.Elem()
		}
		cur = f
	}
	return reflect.Value{}, false
}

func maxDepth(cfg apis.Config) int {
	if cfg.MaxDepth <= 0 {
		return config.DefaultMaxDepth
	}
	return cfg.MaxDepth
}
