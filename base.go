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

import "dirpx.dev/hat/dom"

// Base is the root every hat type embeds. It binds the hat to its node and
// terminates the label chain: Base itself never contributes a label.
//
//	type Thing struct{ hat.Base }
//	type Item struct{ Thing }
//
//	item := &Item{Thing{hat.NewBase(node)}}
//	hat.Wear(item) // node labels: Thing, Item
type Base struct {
	head *dom.Node
}

// NewBase returns a Base bound to head.
func NewBase(head *dom.Node) Base {
	return Base{head: head}
}

// Head returns the node the hat is bound to.
func (b *Base) Head() *dom.Node {
	return b.head
}
