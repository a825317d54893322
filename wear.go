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
	"context"
	"reflect"

	"dirpx.dev/hat/apis"
	"dirpx.dev/hat/dom"
	"dirpx.dev/hat/internal/obs"
)

// slotKey keys the association stored on each node.
type slotKey struct{}

// association is everything a node wears. It lives in the node's value slot,
// so it goes away with the node.
type association struct {
	hats []apis.Hat
	// subs holds the handlers registered through Registrar.On.
	subs []Binding
}

func associationOf(n *dom.Node, create bool) *association {
	if a, ok := n.Value(slotKey{}).(*association); ok {
		return a
	}
	if !create {
		return nil
	}
	a := &association{}
	n.SetValue(slotKey{}, a)
	return a
}

// Registrar registers signal handlers for a worn hat.
type Registrar struct {
	hat  apis.Hat
	node *dom.Node
}

// Wear binds h to its head node: the node records h and gains the labels of
// h's type chain. Wearing the same hat twice records it twice.
//
// Wear panics with *InvalidAnchorError when h is nil, is a bare node, or has
// no element head.
func Wear(h apis.Hat) *Registrar {
	if _, bare := h.(*dom.Node); bare {
		panic(&InvalidAnchorError{Anchor: h, Reason: "a node cannot wear itself"})
	}
	n := headOf(h)
	if !n.IsElement() {
		panic(&InvalidAnchorError{Anchor: h, Reason: "head is not an element"})
	}

	chain := directory.LabelsFor(h)
	a := associationOf(n, true)
	a.hats = append(a.hats, h)
	n.AddLabels(chain...)

	own := ""
	if len(chain) > 0 {
		own = chain[len(chain)-1]
	}
	obs.RecordWorn(context.Background(), own)
	obs.Logger().Debug().
		Stringer("node", n).
		Strs("labels", chain).
		Msg("hat worn")

	return &Registrar{hat: h, node: n}
}

// Hat returns the hat this registrar was created for.
func (r *Registrar) Hat() apis.Hat { return r.hat }

// On subscribes the hat to a signal and labels its node with the signal's
// label. Subscriptions accumulate; there is no unsubscribe.
//
// On panics with *UnnamedSignalError when the signal has no name.
func (r *Registrar) On(b Binding) *Registrar {
	if b == nil {
		panic(&UnnamedSignalError{})
	}
	name := b.signalName()
	if name == "" {
		panic(&UnnamedSignalError{Arg: b.argType()})
	}

	label := b.signalLabel()
	a := associationOf(r.node, true)
	a.subs = append(a.subs, b)
	r.node.AddLabels(label)

	obs.Logger().Debug().
		Stringer("node", r.node).
		Str("signal", label).
		Msg("signal handler registered")
	return r
}

// headOf returns the node via stands for. A *dom.Node is its own head.
func headOf(via apis.Hat) *dom.Node {
	n, err := resolveHead(via)
	if err != nil {
		panic(err)
	}
	return n
}

// elementOf returns the element subtree queries start from: the head itself,
// or the parent of a marker head.
func elementOf(via apis.Hat) *dom.Node {
	n, err := resolveElement(via)
	if err != nil {
		panic(err)
	}
	return n
}

func resolveHead(via apis.Hat) (*dom.Node, error) {
	if via == nil {
		return nil, &InvalidAnchorError{Anchor: via, Reason: "nil"}
	}
	switch v := reflect.ValueOf(via); v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil, &InvalidAnchorError{Anchor: via, Reason: "nil"}
		}
	}
	n := via.Head()
	if n == nil {
		return nil, &InvalidAnchorError{Anchor: via, Reason: "no head node"}
	}
	return n, nil
}

func resolveElement(via apis.Hat) (*dom.Node, error) {
	n, err := resolveHead(via)
	if err != nil {
		return nil, err
	}
	if n.IsElement() {
		return n, nil
	}
	if p := n.Parent(); p != nil {
		return p, nil
	}
	return nil, &InvalidAnchorError{Anchor: via, Reason: "detached marker"}
}
