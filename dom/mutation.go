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

// MutationRecord describes one change to a node's child list.
type MutationRecord struct {
	// Target is the node whose children changed.
	Target *Node
	// Added holds the inserted nodes.
	Added []*Node
	// Removed holds the detached nodes.
	Removed []*Node
	// PreviousSibling and NextSibling surround the change point.
	PreviousSibling *Node
	NextSibling     *Node
}

// Observer receives batches of child-list records for one node.
type Observer struct {
	doc     *Document
	target  *Node
	fn      func([]MutationRecord)
	queue   []MutationRecord
	queued  bool
	stopped bool
}

// Observe subscribes fn to child-list changes of n. Records accumulate until
// the next Flush, which hands each observer its records in mutation order.
func (d *Document) Observe(n *Node, fn func([]MutationRecord)) *Observer {
	o := &Observer{doc: d, target: n, fn: fn}
	n.observers = append(n.observers, o)
	return o
}

// Disconnect stops delivery and drops any queued records.
func (o *Observer) Disconnect() {
	if o.stopped {
		return
	}
	o.stopped = true
	o.queue = nil
	obs := o.target.observers
	for i, x := range obs {
		if x == o {
			o.target.observers = append(obs[:i:i], obs[i+1:]...)
			break
		}
	}
}

// Pending reports whether any records wait for delivery.
func (d *Document) Pending() bool { return len(d.pending) > 0 }

// Flush delivers queued records to their observers and returns how many
// records were delivered. Records produced by callbacks during the flush are
// delivered in the same call.
func (d *Document) Flush() int {
	delivered := 0
	for len(d.pending) > 0 {
		batch := d.pending
		d.pending = nil
		for _, o := range batch {
			o.queued = false
			recs := o.queue
			o.queue = nil
			if o.stopped || len(recs) == 0 {
				continue
			}
			delivered += len(recs)
			o.fn(recs)
		}
	}
	return delivered
}

func (n *Node) notify(rec MutationRecord) {
	for _, o := range n.observers {
		o.queue = append(o.queue, rec)
		if !o.queued {
			o.queued = true
			n.doc.pending = append(n.doc.pending, o)
		}
	}
}
