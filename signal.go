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
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dirpx.dev/hat/dom"
	"dirpx.dev/hat/internal/obs"
)

// Signal is a named, typed broadcast. Its identity is its pointer: two
// signals with the same name share a node label but never each other's
// handlers.
type Signal[A any] struct {
	name  string
	label atomic.Pointer[string]
}

// NewSignal declares a signal. The name forms the label stamped on nodes of
// subscribed hats and must not be empty for subscriptions to succeed.
func NewSignal[A any](name string) *Signal[A] {
	return &Signal[A]{name: name}
}

// Name returns the signal's name.
func (s *Signal[A]) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Label returns the node label of the signal. The label is fixed the first
// time it is asked for, with the signal prefix configured at that moment, so
// later config changes never strand existing subscriptions.
func (s *Signal[A]) Label() string {
	if s == nil {
		return Config().SignalPrefix
	}
	if l := s.label.Load(); l != nil {
		return *l
	}
	l := Config().SignalPrefix + s.name
	if !s.label.CompareAndSwap(nil, &l) {
		return *s.label.Load()
	}
	return l
}

// Binding pairs a signal with a handler. Create one with Signal.Bind and
// pass it to Registrar.On.
type Binding interface {
	signalName() string
	signalLabel() string
	argType() reflect.Type
}

type binding[A any] struct {
	sig *Signal[A]
	fn  func(A)
}

func (b *binding[A]) signalName() string    { return b.sig.Name() }
func (b *binding[A]) signalLabel() string   { return b.sig.Label() }
func (b *binding[A]) argType() reflect.Type { return reflect.TypeFor[A]() }

// Bind returns a Binding of fn to s, usually with a method value of the hat:
//
//	hat.Wear(doc).On(Saved.Bind(doc.onSaved))
func (s *Signal[A]) Bind(fn func(A)) Binding {
	return &binding[A]{sig: s, fn: fn}
}

// Emit calls EmitContext with a background context.
func (s *Signal[A]) Emit(doc *dom.Document, arg A) int {
	return s.EmitContext(context.Background(), doc, arg)
}

// EmitContext invokes, with arg, every handler bound to s in doc: nodes in
// document order (root first), then handlers in registration order. The
// matching nodes are collected before the first handler runs. It returns the
// number of handlers invoked; no subscribers is not an error.
func (s *Signal[A]) EmitContext(ctx context.Context, doc *dom.Document, arg A) int {
	if s == nil || s.name == "" || doc == nil {
		return 0
	}
	label := s.Label()

	ctx, span := obs.Tracer().Start(ctx, "hat.Signal.Emit",
		trace.WithAttributes(attribute.String("hat.signal", label)),
	)
	defer span.End()

	root := doc.Root()
	var targets []*dom.Node
	if root.HasLabel(label) {
		targets = append(targets, root)
	}
	targets = append(targets, root.QueryLabels(label)...)

	invocations := 0
	for _, n := range targets {
		a := associationOf(n, false)
		if a == nil {
			continue
		}
		subs := a.subs[:len(a.subs):len(a.subs)]
		for _, sub := range subs {
			if b, ok := sub.(*binding[A]); ok && b.sig == s && b.fn != nil {
				b.fn(arg)
				invocations++
			}
		}
	}

	span.SetAttributes(
		attribute.Int("hat.signal.matches", len(targets)),
		attribute.Int("hat.signal.invocations", invocations),
	)
	obs.RecordEmit(ctx, label, invocations)
	obs.Logger().Debug().
		Str("signal", label).
		Int("matches", len(targets)).
		Int("invocations", invocations).
		Msg("signal emitted")
	return invocations
}
