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

import "errors"

var (
	// ErrNilNode is returned when a nil node is passed to a tree operation.
	ErrNilNode = errors.New("dom: nil node")
	// ErrForeignNode is returned when a node from another document is inserted.
	ErrForeignNode = errors.New("dom: node belongs to another document")
	// ErrNotChild is returned when a reference node is not a child of the target.
	ErrNotChild = errors.New("dom: reference node is not a child of this node")
	// ErrCycle is returned when inserting a node would make it its own ancestor.
	ErrCycle = errors.New("dom: insertion would create a cycle")
	// ErrNotElement is returned when children are added to a marker.
	ErrNotElement = errors.New("dom: markers cannot have children")
)
