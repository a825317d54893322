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

package strategy

import (
	"reflect"

	"dirpx.dev/hat/apis"
	uref "dirpx.dev/hat/utils/reflect"
)

// NewLabelerStrategy creates an apis.Strategy that uses apis.Labeler.
func NewLabelerStrategy() apis.Strategy {
	return &labelerStrategy{}
}

// labelerStrategy is the declared-label fast path: if the type implements
// apis.Labeler itself, return its HatLabel() and stop the chain.
type labelerStrategy struct{}

// Ensure labelerStrategy implements apis.Strategy.
var _ apis.Strategy = (*labelerStrategy)(nil)

var labelerType = reflect.TypeOf((*apis.Labeler)(nil)).Elem()

// TryResolve asks v itself for its label, so a HatLabel computed from the
// instance's fields is honoured. As with types, a label v only reports
// because an embedded value declares it is ignored. Values that do not
// implement apis.Labeler fall back to TryResolveType.
func (s *labelerStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	l, ok := v.(apis.Labeler)
	if !ok {
		return s.TryResolveType(reflect.TypeOf(v), cfg)
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return s.TryResolveType(rv.Type(), cfg)
		}
		rv = rv.Elem()
	}
	label := l.HatLabel()
	if label == "" {
		return "", false
	}
	if rv.Kind() == reflect.Struct {
		for i := 0; i < rv.NumField(); i++ {
			if !rv.Type().Field(i).Anonymous {
				continue
			}
			if inherited, ok := fieldLabel(rv.Field(i)); ok && inherited == label {
				return "", false
			}
		}
	}
	return label, true
}

// fieldLabel returns the label an embedded field reports. Fields that cannot
// be read through reflection fall back to their type's zero value.
func fieldLabel(f reflect.Value) (string, bool) {
	switch {
	case f.Kind() == reflect.Pointer && f.IsNil():
		return declared(f.Type().Elem())
	case !f.CanInterface():
		ft := f.Type()
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		return declared(ft)
	case f.Type().Implements(labelerType):
		return f.Interface().(apis.Labeler).HatLabel(), true
	case f.CanAddr() && f.Addr().Type().Implements(labelerType):
		return f.Addr().Interface().(apis.Labeler).HatLabel(), true
	default:
		ft := f.Type()
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		return declared(ft)
	}
}

// TryResolveType instantiates a zero t and asks it for its label.
// A label inherited through embedding belongs to the embedded type and is
// ignored here, so subtypes fall through to the next strategy.
func (*labelerStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	base, err := uref.Normalize(t, cfg)
	if err != nil {
		return "", false
	}
	label, ok := declared(base)
	if !ok || label == "" {
		return "", false
	}
	if base.Kind() == reflect.Struct {
		for i := 0; i < base.NumField(); i++ {
			f := base.Field(i)
			if !f.Anonymous {
				continue
			}
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if inherited, ok := declared(ft); ok && inherited == label {
				return "", false
			}
		}
	}
	return label, true
}

// declared returns the label a zero value of t reports through apis.Labeler.
func declared(t reflect.Type) (string, bool) {
	switch {
	case t.Kind() == reflect.Interface:
		return "", false
	case reflect.PointerTo(t).Implements(labelerType):
		return reflect.New(t).Interface().(apis.Labeler).HatLabel(), true
	case t.Implements(labelerType):
		return reflect.Zero(t).Interface().(apis.Labeler).HatLabel(), true
	default:
		return "", false
	}
}
