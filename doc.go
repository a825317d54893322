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

// Package hat attaches behavior to the nodes of a document tree.
//
// A hat is any value with a Head() *dom.Node method; concrete hat types embed
// Base, directly or through another hat type:
//
//	type Thing struct{ hat.Base }
//	type Item struct{ Thing }
//
// # Labels
//
// Wearing a hat stamps its node with the labels of the hat's type chain, one
// per level of embedding, root first: an *Item stamps "Thing" and "Item".
// Labels come from, in order, a HatLabel() method declared on the type, an
// explicit RegisterLabel, or the Go type name. Names that are empty, shorter
// than Config().MinLabelLength or already used by another type are replaced
// by synthetic labels ("_hat_" + name + counter). A type's chain is derived
// once, on its first Wear, and never changes afterwards.
//
// # Queries
//
// Lookups start from a node or a hat (its head):
//
//	Of, Up, Over   nearest hat on the node or an ancestor
//	Down, Under    first or all hats in the subtree, document order
//	Nearest        closest hat in tree distance
//	Next, Previous element siblings
//	Map, Children  project a node sequence
//
// A query type T matches a hat that is assignable to T, or, when T is *S,
// a hat that embeds S somewhere in its chain; the embedded *S is returned.
// Subtree queries only visit subtrees holding the labels of T, so a type no
// hat of which has been worn yet is never found below a node.
//
// Only Over reports absence as an error. Anchors that resolve to no node
// panic with *InvalidAnchorError.
//
// # Signals
//
// A Signal is a named broadcast with a typed argument. Hats subscribe through
// the registrar Wear returns, and Emit reaches every subscribed hat in the
// document:
//
//	var Saved = hat.NewSignal[string]("saved")
//
//	hat.Wear(editor).On(Saved.Bind(editor.onSaved))
//	Saved.Emit(doc, "draft.md")
//
// # Lists
//
// List is a live, index-addressable view over the children of one node that
// wear a given hat type, with insert, move and mutation observation.
//
// # Configuration
//
// The package keeps a process-wide snapshot of configuration, registry,
// resolver and builder, published atomically. SetConfig, SetRegistry,
// SetResolver, SetBuilder and SetAll swap it; an explicitly set registry or
// resolver is pinned and survives rebuilds until unpinned. Everything built
// on one dom.Document is meant for a single goroutine; the snapshot and the
// label cache are safe for concurrent use.
package hat
