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
	"reflect"
	"slices"

	"dirpx.dev/hat/apis"
	"dirpx.dev/hat/dom"
	uref "dirpx.dev/hat/utils/reflect"
)

// All returns a copy of the hats worn by n, in the order they were worn.
func All(n *dom.Node) []apis.Hat {
	if n == nil {
		return nil
	}
	a := associationOf(n, false)
	if a == nil {
		return []apis.Hat{}
	}
	return slices.Clone(a.hats)
}

// Of returns the nearest hat of type T worn by n or one of its ancestors,
// checking n first.
func Of[T any](n *dom.Node) (T, bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		if v, ok := own[T](cur); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Up is Of starting at the head of via, which may be a node or a hat.
func Up[T any](via apis.Hat) (T, bool) {
	return Of[T](headOf(via))
}

// Over is Up for callers that consider absence a bug. It returns a
// *HatNotFoundError exactly when Up reports not found.
func Over[T any](via apis.Hat) (T, error) {
	n := headOf(via)
	v, ok := Of[T](n)
	if !ok {
		return v, &HatNotFoundError{Type: reflect.TypeFor[T](), From: n}
	}
	return v, nil
}

// Down returns the first hat of type T worn below via, in document order.
func Down[T any](via apis.Hat) (T, bool) {
	return down[T](elementOf(via), queryLabels[T]())
}

// Under returns every hat of type T worn below via, in document order.
func Under[T any](via apis.Hat) []T {
	var out []T
	elementOf(via).EachLabeled(queryLabels[T](), func(n *dom.Node) bool {
		if v, ok := own[T](n); ok {
			out = append(out, v)
		}
		return true
	})
	return out
}

// Nearest returns the hat of type T closest to via in tree distance. Each
// element level, starting at via and moving up, is searched downward. A
// level's own hat is never considered, so an ancestor is reached only once
// the subtree of its own parent is searched.
func Nearest[T any](via apis.Hat) (T, bool) {
	labels := queryLabels[T]()
	for cur := headOf(via); cur != nil; cur = cur.Parent() {
		if !cur.IsElement() {
			continue
		}
		if v, ok := down[T](cur, labels); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Next returns the hat of type T worn by the closest following element
// sibling of via that has one. It does not wrap around.
func Next[T any](via apis.Hat) (T, bool) {
	for s := headOf(via).NextElementSibling(); s != nil; s = s.NextElementSibling() {
		if v, ok := own[T](s); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Previous is Next in the other direction.
func Previous[T any](via apis.Hat) (T, bool) {
	for s := headOf(via).PreviousElementSibling(); s != nil; s = s.PreviousElementSibling() {
		if v, ok := own[T](s); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Map returns the hats of type T worn by nodes, in order. Nodes without one
// are dropped.
func Map[T any](nodes []*dom.Node) []T {
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if v, ok := own[T](n); ok {
			out = append(out, v)
		}
	}
	return out
}

// Children maps the element children of via to their hats of type T.
func Children[T any](via apis.Hat) []T {
	return Map[T](elementOf(via).Children())
}

func down[T any](root *dom.Node, labels []string) (T, bool) {
	var (
		found T
		ok    bool
	)
	root.EachLabeled(labels, func(n *dom.Node) bool {
		found, ok = own[T](n)
		return !ok
	})
	return found, ok
}

// own returns the first hat worn by n itself that matches T.
func own[T any](n *dom.Node) (T, bool) {
	if a := associationOf(n, false); a != nil {
		for _, h := range a.hats {
			if v, ok := match[T](h); ok {
				return v, true
			}
		}
	}
	var zero T
	return zero, false
}

// match reports whether h is a T. Besides plain assignability, a hat
// matches *S when S is one of its embedded ancestors; the result is then a
// pointer to that embedded S.
func match[T any](h apis.Hat) (T, bool) {
	if v, ok := h.(T); ok {
		return v, true
	}
	var zero T
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return zero, false
	}
	p, ok := uref.Embedded(reflect.ValueOf(h), t.Elem(), baseType, hatType, Config())
	if !ok {
		return zero, false
	}
	return p.Interface().(T), true
}

// queryLabels returns the labels a node wearing a T must carry. Interface
// types expand to every known implementing type; types never worn have no
// labels, so subtree queries for them find nothing.
func queryLabels[T any]() []string {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Interface {
		return directory.Implementing(t)
	}
	chain, ok := directory.Lookup(t)
	if !ok || len(chain) == 0 {
		return nil
	}
	return chain[len(chain)-1:]
}
