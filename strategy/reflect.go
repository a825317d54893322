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
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/hat/apis"
	uref "dirpx.dev/hat/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that labels types by their Go
// type name.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback. It strips pointers, drops
// generic instantiation parameters and optionally prefixes the package.
// Anonymous types resolve to "" and are still reported as handled: the
// directory turns empty labels into synthetic ones.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect resolution.
type cacheKey struct {
	t        reflect.Type
	qualify  bool
	maxDepth int
}

// typeLabelCache caches resolved labels by (type, config knobs).
var typeLabelCache sync.Map // key: cacheKey, val: string

// TryResolve computes the label for v's type.
func (reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return byType(reflect.TypeOf(v), cfg), true
}

// TryResolveType computes the label for t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return byType(t, cfg), true
}

// byType resolves the label for t with memoization.
func byType(t reflect.Type, cfg apis.Config) string {
	key := cacheKey{t: t, qualify: cfg.QualifyPackage, maxDepth: cfg.MaxDepth}
	if v, ok := typeLabelCache.Load(key); ok {
		return v.(string)
	}

	label := ""
	if base, err := uref.Normalize(t, cfg); err == nil {
		label = stripTypeParams(base.Name())
		if p := base.PkgPath(); p != "" && label != "" && cfg.QualifyPackage {
			label = path.Base(p) + "." + label
		}
	}

	typeLabelCache.Store(key, label)
	return label
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
