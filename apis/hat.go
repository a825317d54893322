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

package apis

import "dirpx.dev/hat/dom"

// Hat is a behavioral object bound to exactly one document node, its head.
//
// A *dom.Node satisfies Hat as well (its head is itself), so every query that
// starts "from a node or a hat" accepts a Hat.
type Hat interface {
	// Head returns the node this hat is bound to.
	Head() *dom.Node
}

// Labeler lets a hat type declare its own label explicitly instead of having
// it derived from the Go type name.
//
// The returned label describes the type, not the instance. When a type's
// chain is first derived while wearing a hat, the label is read from that
// hat; otherwise from a zero value. Either way it is then fixed for the type,
// so a label computed from field values only ever reflects the first
// instance seen.
type Labeler interface {
	// HatLabel returns the label stamped on nodes wearing this type.
	HatLabel() string
}
