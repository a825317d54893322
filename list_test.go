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

package hat_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"dirpx.dev/hat"
	"dirpx.dev/hat/dom"
)

func newItemList(t *testing.T, names ...string) (*dom.Document, *hat.List[*Item], []*Item) {
	t.Helper()
	doc := dom.NewDocument()
	parent := element(doc.Root(), "ul")
	var items []*Item
	for _, n := range names {
		items = append(items, newItem(parent, n))
	}
	l, err := hat.NewList[*Item](parent)
	require.NoError(t, err)
	return doc, l, items
}

func names(l *hat.List[*Item]) []string {
	return hat.MapList(l, func(it *Item, _ int) string { return it.Name })
}

func TestList_InsertThenMove(t *testing.T) {
	doc, l, _ := newItemList(t, "a", "b", "c")
	fresh := detachedItem(doc, "d")

	at, err := l.Insert(fresh)
	require.NoError(t, err)
	require.Equal(t, 3, at)
	require.Equal(t, 4, l.Len())
	require.Equal(t, 3, l.IndexOf(fresh))

	require.NoError(t, l.Move(3, 0))
	got, ok := l.At(0)
	require.True(t, ok)
	require.Same(t, fresh, got)
	require.Equal(t, 4, l.Len())
	require.Equal(t, []string{"d", "a", "b", "c"}, names(l))
}

func TestList_InsertEmptyInput(t *testing.T) {
	_, l, _ := newItemList(t, "a")
	at, err := l.Insert()
	require.NoError(t, err)
	require.Equal(t, -1, at)
	at, err = l.InsertAt(0)
	require.NoError(t, err)
	require.Equal(t, -1, at)
	require.Equal(t, 1, l.Len())
}

func TestList_InsertAt(t *testing.T) {
	doc, l, _ := newItemList(t, "a", "b", "c")

	at, err := l.InsertAt(1, detachedItem(doc, "x"), detachedItem(doc, "y"))
	require.NoError(t, err)
	require.Equal(t, 1, at)
	require.Equal(t, []string{"a", "x", "y", "b", "c"}, names(l))

	at, err = l.InsertAt(99, detachedItem(doc, "end"))
	require.NoError(t, err)
	require.Equal(t, 5, at)

	at, err = l.InsertAt(-1, detachedItem(doc, "neg"))
	require.NoError(t, err)
	require.Equal(t, 5, at)
	require.Equal(t, []string{"a", "x", "y", "b", "c", "neg", "end"}, names(l))

	at, err = l.InsertAt(-100, detachedItem(doc, "front"))
	require.NoError(t, err)
	require.Zero(t, at)
	require.Equal(t, "front", names(l)[0])
}

func TestList_AppendsBeforeMarker(t *testing.T) {
	doc, l, _ := newItemList(t, "a")
	parent := l.Parent()
	trailer := element(parent, "footer")

	_, err := l.Insert(detachedItem(doc, "b"))
	require.NoError(t, err)

	children := parent.Children()
	require.Same(t, trailer, children[len(children)-1])
	require.Equal(t, []string{"a", "b"}, names(l))
}

func TestList_EmptyInsertsBeforeMarker(t *testing.T) {
	doc := dom.NewDocument()
	parent := element(doc.Root(), "ul")
	header := element(parent, "header")
	l, err := hat.NewList[*Item](parent)
	require.NoError(t, err)

	first := detachedItem(doc, "first")
	at, err := l.Insert(first)
	require.NoError(t, err)
	require.Zero(t, at)
	require.Same(t, header, parent.FirstChild())
	require.Same(t, header, first.Head().PreviousSibling())
	require.Equal(t, dom.MarkerNode, first.Head().NextSibling().Kind())
}

func TestList_EmptyInsertAtZeroGoesToFront(t *testing.T) {
	doc := dom.NewDocument()
	parent := element(doc.Root(), "ul")
	header := element(parent, "header")
	l, err := hat.NewList[*Item](parent)
	require.NoError(t, err)

	first, second := detachedItem(doc, "first"), detachedItem(doc, "second")
	at, err := l.InsertAt(0, first, second)
	require.NoError(t, err)
	require.Zero(t, at)
	require.Same(t, first.Head(), parent.FirstChild())
	require.Same(t, second.Head(), first.Head().NextSibling())
	require.Same(t, header, second.Head().NextSibling())
	require.Equal(t, []string{"first", "second"}, names(l))
}

func TestList_MarkerRestored(t *testing.T) {
	doc, l, _ := newItemList(t, "a")
	parent := l.Parent()
	for _, c := range parent.ChildNodes() {
		if !c.IsElement() {
			c.Remove()
		}
	}
	trailer := element(parent, "footer")

	at, err := l.Insert(detachedItem(doc, "b"))
	require.NoError(t, err)
	require.Equal(t, 1, at)
	// The marker went back to the end, so the append lands after the trailer.
	require.Same(t, trailer, parent.Children()[1])
	require.Equal(t, []string{"a", "b"}, names(l))
	require.False(t, parent.LastChild().IsElement())
}

func TestList_MoveBackwardAndNoop(t *testing.T) {
	_, l, items := newItemList(t, "a", "b", "c", "d")

	require.NoError(t, l.Move(0, 2))
	require.Equal(t, []string{"b", "a", "c", "d"}, names(l))
	got, _ := l.At(1)
	require.Same(t, items[0], got)

	require.NoError(t, l.Move(-1, 0))
	require.Equal(t, []string{"d", "b", "a", "c"}, names(l))

	require.NoError(t, l.Move(0, 10))
	require.NoError(t, l.Move(10, 0))
	require.NoError(t, l.Move(1, 1))
	require.Equal(t, []string{"d", "b", "a", "c"}, names(l))
	require.Equal(t, 4, l.Len())
}

func TestList_AtAndIndexOf(t *testing.T) {
	doc, l, items := newItemList(t, "a", "b")

	got, ok := l.At(-1)
	require.True(t, ok)
	require.Same(t, items[1], got)
	_, ok = l.At(2)
	require.False(t, ok)
	_, ok = l.At(-3)
	require.False(t, ok)

	require.Equal(t, 1, l.IndexOf(items[1]))
	require.Equal(t, -1, l.IndexOf(detachedItem(doc, "x")))
	require.Equal(t, -1, l.IndexOf(nil))
}

func TestList_FiltersByType(t *testing.T) {
	doc, l, _ := newItemList(t, "a")
	newFolder(l.Parent())
	element(l.Parent(), "p")
	_, err := l.Insert(detachedItem(doc, "b"))
	require.NoError(t, err)

	require.Equal(t, 2, l.Len())
	things, err := hat.NewList[*Thing](l.Parent())
	require.NoError(t, err)
	require.Equal(t, 2, things.Len())
}

func TestList_AllIsLiveAndRestartable(t *testing.T) {
	doc, l, _ := newItemList(t, "a", "b", "c")

	var seen []string
	for it := range l.All() {
		seen = append(seen, it.Name)
		if it.Name == "b" {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, seen)

	_, err := l.Insert(detachedItem(doc, "d"))
	require.NoError(t, err)

	seen = seen[:0]
	for it := range l.All() {
		seen = append(seen, it.Name)
	}
	require.Equal(t, []string{"a", "b", "c", "d"}, seen)
	require.Equal(t, seen, names(l))
	require.Len(t, l.Slice(), 4)
}

func TestList_Observe(t *testing.T) {
	doc, l, items := newItemList(t, "a", "b")
	var first, second []dom.MutationRecord
	l.Observe(func(r dom.MutationRecord) { first = append(first, r) })
	l.Observe(func(r dom.MutationRecord) { second = append(second, r) })

	require.NoError(t, l.Move(1, 0))
	require.Empty(t, first, "records are delivered on flush")

	doc.Flush()
	// A move is a removal followed by an insertion.
	require.Len(t, first, 2)
	require.Equal(t, first, second)
	require.Equal(t, []*dom.Node{items[1].Head()}, first[0].Removed)
	require.Equal(t, []*dom.Node{items[1].Head()}, first[1].Added)
}

func TestList_MarshalJSON(t *testing.T) {
	_, l, _ := newItemList(t, "a", "b")
	data, err := json.Marshal(l)
	require.NoError(t, err)
	require.JSONEq(t, `[{"Name":"a"},{"Name":"b"}]`, string(data))

	doc := dom.NewDocument()
	empty, err := hat.NewList[*Item](doc.Root())
	require.NoError(t, err)
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestNewList_InvalidAnchor(t *testing.T) {
	_, err := hat.NewList[*Item](nil)
	var target *hat.InvalidAnchorError
	require.ErrorAs(t, err, &target)

	_, err = hat.NewList[*Item](dom.NewDocument().CreateMarker())
	require.ErrorIs(t, err, hat.ErrInvalidAnchor)
}

// TestList_InsertReportsIndexOf checks, for random insert positions, that
// the reported index is where the hat ends up, and that moves keep length.
func TestList_InsertReportsIndexOf(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		doc := dom.NewDocument()
		parent := element(doc.Root(), "ul")
		l, err := hat.NewList[*Item](parent)
		if err != nil {
			rt.Fatal(err)
		}

		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "noise") {
				element(parent, "p")
			}
			it := detachedItem(doc, "x")
			var at int
			if rapid.Bool().Draw(rt, "append") {
				at, err = l.Insert(it)
			} else {
				at, err = l.InsertAt(rapid.IntRange(-25, 25).Draw(rt, "index"), it)
			}
			if err != nil {
				rt.Fatal(err)
			}
			if got := l.IndexOf(it); got != at {
				rt.Fatalf("insert reported %d, IndexOf %d", at, got)
			}

			n := l.Len()
			from := rapid.IntRange(0, n-1).Draw(rt, "from")
			to := rapid.IntRange(0, n-1).Draw(rt, "to")
			moved, _ := l.At(from)
			if err := l.Move(from, to); err != nil {
				rt.Fatal(err)
			}
			if l.Len() != n {
				rt.Fatalf("move changed length %d -> %d", n, l.Len())
			}
			want := to
			if from < to {
				want = to - 1
			}
			if got, _ := l.At(want); got != moved {
				rt.Fatalf("move(%d,%d): hat not at %d", from, to, want)
			}
		}
	})
}
