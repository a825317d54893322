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

// Package dom is an in-memory document tree that hats attach to.
//
// It provides the small host surface the hat package needs: element and
// marker nodes linked into an ordered tree, a per-node label set with a
// label-indexed descendant query, per-node value slots, and child-list
// mutation observers whose records are batched and delivered later, from
// Document.Flush, never inside the call that mutated the tree.
//
// # Labels
//
// Every node keeps, next to its own labels, a count of how many of its
// descendants carry each label. QueryLabels uses these counts to skip any
// subtree that cannot contain a match, so a query costs time proportional
// to the matched paths rather than the whole document.
//
// # Concurrency
//
// A Document and all of its nodes belong to one goroutine. Nothing here
// takes locks.
package dom
