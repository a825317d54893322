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
	"dirpx.dev/hat"
	"dirpx.dev/hat/dom"
)

type Thing struct{ hat.Base }

type Item struct {
	Thing
	Name string
}

func (i *Item) Title() string { return i.Name }

type Folder struct{ hat.Base }

// Ghost is never worn.
type Ghost struct{ hat.Base }

type Titled interface{ Title() string }

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func element(parent *dom.Node, name string) *dom.Node {
	n := parent.Document().CreateElement(name)
	must(parent.AppendChild(n))
	return n
}

func newItem(parent *dom.Node, name string) *Item {
	it := &Item{Thing: Thing{hat.NewBase(element(parent, "li"))}, Name: name}
	hat.Wear(it)
	return it
}

func newThing(parent *dom.Node) *Thing {
	th := &Thing{hat.NewBase(element(parent, "div"))}
	hat.Wear(th)
	return th
}

func newFolder(parent *dom.Node) *Folder {
	f := &Folder{hat.NewBase(element(parent, "section"))}
	hat.Wear(f)
	return f
}

// detachedItem is an Item that is worn but not yet in the tree.
func detachedItem(doc *dom.Document, name string) *Item {
	it := &Item{Thing: Thing{hat.NewBase(doc.CreateElement("li"))}, Name: name}
	hat.Wear(it)
	return it
}
