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

import "sort"

// AddLabels attaches labels to n. Adding a label twice is a no-op, as is
// labelling a marker.
func (n *Node) AddLabels(labels ...string) {
	if n.kind != ElementNode {
		return
	}
	for _, l := range labels {
		if l == "" {
			continue
		}
		if _, ok := n.labels[l]; ok {
			continue
		}
		if n.labels == nil {
			n.labels = make(map[string]struct{})
		}
		n.labels[l] = struct{}{}
		for a := n.parent; a != nil; a = a.parent {
			a.bump(l, 1)
		}
	}
}

// HasLabel reports whether n carries label.
func (n *Node) HasLabel(label string) bool {
	_, ok := n.labels[label]
	return ok
}

// Labels returns n's labels in sorted order.
func (n *Node) Labels() []string {
	out := make([]string, 0, len(n.labels))
	for l := range n.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// QueryLabels returns the descendants of n (n excluded) that carry at least
// one of labels, in document order.
func (n *Node) QueryLabels(labels ...string) []*Node {
	var out []*Node
	n.EachLabeled(labels, func(m *Node) bool {
		out = append(out, m)
		return true
	})
	return out
}

// EachLabeled calls fn, in document order, for every descendant of n that
// carries at least one of labels, until fn returns false.
// Subtrees that hold none of the labels are never entered.
func (n *Node) EachLabeled(labels []string, fn func(*Node) bool) {
	if len(labels) == 0 {
		return
	}
	n.eachLabeled(labels, fn)
}

func (n *Node) eachLabeled(labels []string, fn func(*Node) bool) bool {
	if !n.holdsAny(labels) {
		return true
	}
	for c := n.first; c != nil; {
		next := c.next
		if c.kind == ElementNode {
			if c.carriesAny(labels) && !fn(c) {
				return false
			}
			if !c.eachLabeled(labels, fn) {
				return false
			}
		}
		c = next
	}
	return true
}

// carriesAny reports whether n itself carries one of labels.
func (n *Node) carriesAny(labels []string) bool {
	for _, l := range labels {
		if _, ok := n.labels[l]; ok {
			return true
		}
	}
	return false
}

// holdsAny reports whether a strict descendant of n carries one of labels.
func (n *Node) holdsAny(labels []string) bool {
	for _, l := range labels {
		if n.counts[l] > 0 {
			return true
		}
	}
	return false
}

// tally returns the label totals of the subtree rooted at n, n included.
func (n *Node) tally() map[string]int {
	if len(n.labels) == 0 && len(n.counts) == 0 {
		return nil
	}
	t := make(map[string]int, len(n.labels)+len(n.counts))
	for l, c := range n.counts {
		t[l] = c
	}
	for l := range n.labels {
		t[l]++
	}
	return t
}

// addCounts applies sign*t to n and all of its ancestors.
func (n *Node) addCounts(t map[string]int, sign int) {
	if len(t) == 0 {
		return
	}
	for a := n; a != nil; a = a.parent {
		for l, c := range t {
			a.bump(l, sign*c)
		}
	}
}

func (n *Node) bump(label string, delta int) {
	if n.counts == nil {
		n.counts = make(map[string]int)
	}
	v := n.counts[label] + delta
	if v <= 0 {
		delete(n.counts, label)
		return
	}
	n.counts[label] = v
}
