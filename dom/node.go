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

package dom

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind distinguishes elements from inert markers.
type Kind uint8

const (
	// ElementNode can carry labels, values and children.
	ElementNode Kind = iota + 1
	// MarkerNode is an inert placeholder. It takes part in child order but is
	// skipped by element navigation, label queries and Children.
	MarkerNode
)

func (k Kind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case MarkerNode:
		return "marker"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Document owns a tree of nodes rooted at Root and the queue of pending
// mutation records.
type Document struct {
	root    *Node
	pending []*Observer
}

// NewDocument creates an empty document whose root element is named "body".
func NewDocument() *Document {
	d := &Document{}
	d.root = d.newNode(ElementNode, "body")
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Node { return d.root }

// CreateElement returns a new, detached element.
func (d *Document) CreateElement(name string) *Node {
	return d.newNode(ElementNode, name)
}

// CreateMarker returns a new, detached marker.
func (d *Document) CreateMarker() *Node {
	return d.newNode(MarkerNode, "")
}

func (d *Document) newNode(kind Kind, name string) *Node {
	return &Node{id: uuid.New(), doc: d, kind: kind, name: name}
}

// Node is a position in a document tree.
// Its identity is its pointer; ID is only a diagnostic handle.
type Node struct {
	id   uuid.UUID
	doc  *Document
	kind Kind
	name string

	parent      *Node
	first, last *Node
	prev, next  *Node

	labels map[string]struct{}
	// counts holds, per label, how many strict descendants carry it.
	counts map[string]int

	slots     map[any]any
	observers []*Observer
}

// ID returns the node's diagnostic identifier.
func (n *Node) ID() uuid.UUID { return n.id }

// Name returns the name given at creation.
func (n *Node) Name() string { return n.name }

// Kind returns whether n is an element or a marker.
func (n *Node) Kind() Kind { return n.kind }

// IsElement reports whether n is an element.
func (n *Node) IsElement() bool { return n != nil && n.kind == ElementNode }

// Document returns the document that created n.
func (n *Node) Document() *Document { return n.doc }

// Head returns n itself, so a node can be used wherever a hat is expected
// as a starting point.
func (n *Node) Head() *Node { return n }

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.kind == MarkerNode {
		return "#marker/" + n.id.String()[:8]
	}
	return n.name + "/" + n.id.String()[:8]
}

// Parent returns n's parent, or nil for the root and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// ParentElement returns n's parent element. Markers never have children, so
// this is the same node as Parent.
func (n *Node) ParentElement() *Node {
	if n.parent != nil && n.parent.kind == ElementNode {
		return n.parent
	}
	return nil
}

// FirstChild returns the first child node (element or marker).
func (n *Node) FirstChild() *Node { return n.first }

// LastChild returns the last child node (element or marker).
func (n *Node) LastChild() *Node { return n.last }

// NextSibling returns the following sibling node (element or marker).
func (n *Node) NextSibling() *Node { return n.next }

// PreviousSibling returns the preceding sibling node (element or marker).
func (n *Node) PreviousSibling() *Node { return n.prev }

// NextElementSibling returns the first following sibling that is an element.
func (n *Node) NextElementSibling() *Node {
	for s := n.next; s != nil; s = s.next {
		if s.kind == ElementNode {
			return s
		}
	}
	return nil
}

// PreviousElementSibling returns the first preceding sibling that is an element.
func (n *Node) PreviousElementSibling() *Node {
	for s := n.prev; s != nil; s = s.prev {
		if s.kind == ElementNode {
			return s
		}
	}
	return nil
}

// ChildNodes returns a snapshot of all children, markers included.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for c := n.first; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// Children returns a snapshot of the element children.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.first; c != nil; c = c.next {
		if c.kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for c := other; c != nil; c = c.parent {
		if c == n {
			return true
		}
	}
	return false
}

// Value returns the value stored under key, or nil.
func (n *Node) Value(key any) any {
	return n.slots[key]
}

// SetValue stores val under key. The value lives exactly as long as the node.
func (n *Node) SetValue(key, val any) {
	if n.slots == nil {
		n.slots = make(map[any]any)
	}
	n.slots[key] = val
}

// AppendChild inserts c as n's last child, moving it if it is already attached.
func (n *Node) AppendChild(c *Node) error {
	return n.InsertBefore(c, nil)
}

// Prepend inserts nodes, in order, before n's first child.
func (n *Node) Prepend(nodes ...*Node) error {
	ref := n.first
	for _, c := range nodes {
		if err := n.InsertBefore(c, ref); err != nil {
			return err
		}
		ref = c.next
	}
	return nil
}

// InsertBefore inserts c immediately before ref, or last when ref is nil.
// A node that is already attached somewhere is moved; observers of its old
// parent see a removal and observers of n see an addition. Inserting a node
// before itself, or before its own next sibling, leaves the tree untouched
// and records nothing.
func (n *Node) InsertBefore(c, ref *Node) error {
	switch {
	case c == nil:
		return ErrNilNode
	case c.doc != n.doc:
		return ErrForeignNode
	case n.kind != ElementNode:
		return ErrNotElement
	case ref != nil && ref.parent != n:
		return ErrNotChild
	case c.Contains(n):
		return ErrCycle
	}
	if c.parent == n && (ref == c || ref == c.next) {
		return nil
	}
	if c.parent != nil {
		c.parent.unlink(c)
	}

	c.parent = n
	c.next = ref
	if ref == nil {
		c.prev = n.last
		n.last = c
	} else {
		c.prev = ref.prev
		ref.prev = c
	}
	if c.prev == nil {
		n.first = c
	} else {
		c.prev.next = c
	}

	n.addCounts(c.tally(), 1)
	n.notify(MutationRecord{
		Target:          n,
		Added:           []*Node{c},
		PreviousSibling: c.prev,
		NextSibling:     c.next,
	})
	return nil
}

// RemoveChild detaches c from n.
func (n *Node) RemoveChild(c *Node) error {
	if c == nil {
		return ErrNilNode
	}
	if c.parent != n {
		return ErrNotChild
	}
	n.unlink(c)
	return nil
}

// Remove detaches n from its parent. It is a no-op for detached nodes.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.unlink(n)
	}
}

func (n *Node) unlink(c *Node) {
	prev, next := c.prev, c.next
	if prev == nil {
		n.first = next
	} else {
		prev.next = next
	}
	if next == nil {
		n.last = prev
	} else {
		next.prev = prev
	}
	c.parent, c.prev, c.next = nil, nil, nil

	n.addCounts(c.tally(), -1)
	n.notify(MutationRecord{
		Target:          n,
		Removed:         []*Node{c},
		PreviousSibling: prev,
		NextSibling:     next,
	})
}
