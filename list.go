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
	"encoding/json"
	"iter"

	"dirpx.dev/hat/apis"
	"dirpx.dev/hat/dom"
	"dirpx.dev/hat/internal/obs"
)

// List is a live, ordered view over the element children of one parent that
// wear a hat of type T. It keeps no copy of the sequence: every call reads
// the tree. A marker child appended at construction anchors appends.
type List[T apis.Hat] struct {
	parent *dom.Node
	marker *dom.Node

	observer  *dom.Observer
	callbacks []func(dom.MutationRecord)
}

// NewList creates a view over parent's children and appends its marker.
func NewList[T apis.Hat](parent apis.Hat) (*List[T], error) {
	p, err := resolveElement(parent)
	if err != nil {
		return nil, err
	}
	l := &List[T]{parent: p, marker: p.Document().CreateMarker()}
	if err := p.AppendChild(l.marker); err != nil {
		return nil, err
	}
	return l, nil
}

// Parent returns the node the view is bound to.
func (l *List[T]) Parent() *dom.Node { return l.parent }

// All iterates the current members in document order. Each iteration reads
// the tree afresh.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := l.parent.FirstChild(); c != nil; {
			next := c.NextSibling()
			if c.IsElement() {
				if v, ok := own[T](c); ok && !yield(v) {
					return
				}
			}
			c = next
		}
	}
}

// Slice returns the current members in document order.
func (l *List[T]) Slice() []T {
	_, hats := l.members()
	return hats
}

// MapList projects the members of l through fn, which also receives each
// member's index.
func MapList[T apis.Hat, R any](l *List[T], fn func(T, int) R) []R {
	hats := l.Slice()
	out := make([]R, len(hats))
	for i, h := range hats {
		out[i] = fn(h, i)
	}
	return out
}

// At returns the member at index i. Negative indices count from the end.
func (l *List[T]) At(i int) (T, bool) {
	_, hats := l.members()
	if i < 0 {
		i += len(hats)
	}
	if i < 0 || i >= len(hats) {
		var zero T
		return zero, false
	}
	return hats[i], true
}

// Len returns the number of members.
func (l *List[T]) Len() int {
	nodes, _ := l.members()
	return len(nodes)
}

// IndexOf returns the position of h among the members, or -1.
func (l *List[T]) IndexOf(h T) int {
	head, err := resolveHead(h)
	if err != nil {
		return -1
	}
	nodes, _ := l.members()
	for i, n := range nodes {
		if n == head {
			return i
		}
	}
	return -1
}

// Insert appends hats, in order, after the last member.
// It returns the index of the first inserted hat, or -1 for no hats.
func (l *List[T]) Insert(hats ...T) (int, error) {
	return l.insert(-1, true, hats)
}

// InsertAt inserts hats, in order, before the member at index i. An index
// past the end appends; a negative index counts from the end and is clamped
// to zero. Index zero on an empty view inserts at the parent's front. It returns the effective index of the first inserted hat, or -1
// for no hats. The hats should already be worn, or they will not show up as
// members.
func (l *List[T]) InsertAt(i int, hats ...T) (int, error) {
	return l.insert(i, false, hats)
}

func (l *List[T]) insert(i int, tail bool, hats []T) (int, error) {
	if len(hats) == 0 {
		return -1, nil
	}
	heads := make([]*dom.Node, len(hats))
	for k, h := range hats {
		n, err := resolveHead(h)
		if err != nil {
			return -1, err
		}
		heads[k] = n
	}
	if l.marker.Parent() != l.parent {
		if err := l.parent.AppendChild(l.marker); err != nil {
			return -1, err
		}
	}

	nodes, _ := l.members()
	if i < 0 && !tail {
		i = max(i+len(nodes), 0)
	}

	var err error
	switch {
	case len(nodes) == 0 && !tail && i == 0:
		err = l.parent.Prepend(heads...)
	case tail || i >= len(nodes):
		err = l.insertBefore(heads, l.marker)
	default:
		err = l.insertBefore(heads, nodes[i])
	}
	if err != nil {
		return -1, err
	}

	at := l.position(heads[0])
	obs.Logger().Debug().
		Stringer("parent", l.parent).
		Int("count", len(heads)).
		Int("index", at).
		Msg("list insert")
	return at, nil
}

func (l *List[T]) insertBefore(heads []*dom.Node, ref *dom.Node) error {
	for _, h := range heads {
		if err := l.parent.InsertBefore(h, ref); err != nil {
			return err
		}
	}
	return nil
}

// position counts the members that precede n among the parent's children.
func (l *List[T]) position(n *dom.Node) int {
	at := 0
	for c := l.parent.FirstChild(); c != nil && c != n; c = c.NextSibling() {
		if c.IsElement() {
			if _, ok := own[T](c); ok {
				at++
			}
		}
	}
	return at
}

// Move puts the member at index from immediately before the member at index
// to. Negative indices count from the end. It does nothing when either index
// is out of range.
func (l *List[T]) Move(from, to int) error {
	nodes, _ := l.members()
	if from < 0 {
		from += len(nodes)
	}
	if to < 0 {
		to += len(nodes)
	}
	if from < 0 || from >= len(nodes) || to < 0 || to >= len(nodes) || from == to {
		return nil
	}
	if err := l.parent.InsertBefore(nodes[from], nodes[to]); err != nil {
		return err
	}
	obs.Logger().Debug().
		Stringer("parent", l.parent).
		Int("from", from).
		Int("to", to).
		Msg("list move")
	return nil
}

// Observe registers cb for every child-list mutation record of the parent.
// The first call subscribes to the document; later calls share that
// subscription. Records arrive when the document is flushed.
func (l *List[T]) Observe(cb func(dom.MutationRecord)) {
	if l.observer == nil {
		l.observer = l.parent.Document().Observe(l.parent, func(recs []dom.MutationRecord) {
			callbacks := l.callbacks[:len(l.callbacks):len(l.callbacks)]
			for _, rec := range recs {
				for _, fn := range callbacks {
					fn(rec)
				}
			}
		})
	}
	l.callbacks = append(l.callbacks, cb)
}

// MarshalJSON encodes the current members as a JSON array.
func (l *List[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Slice())
}

func (l *List[T]) members() ([]*dom.Node, []T) {
	var (
		nodes []*dom.Node
		hats  = []T{}
	)
	for _, c := range l.parent.Children() {
		if v, ok := own[T](c); ok {
			nodes = append(nodes, c)
			hats = append(hats, v)
		}
	}
	return nodes, hats
}
