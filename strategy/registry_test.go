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

package strategy_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/hat/config"
	"dirpx.dev/hat/registry"
	"dirpx.dev/hat/strategy"
)

type Panel struct{ base }
type Gauge[T any] struct{ base }

func TestRegistryStrategy_WithRealRegistry(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	require.NoError(t, reg.Register(reflect.TypeOf(Panel{}), "ui.panel"))

	s := strategy.NewRegistryStrategy(reg)

	got, ok := s.TryResolve(&Panel{}, cfg)
	require.True(t, ok)
	require.Equal(t, "ui.panel", got)

	got, ok = s.TryResolveType(reflect.TypeOf((**Panel)(nil)), cfg)
	require.True(t, ok)
	require.Equal(t, "ui.panel", got)

	// Unknown type -> miss.
	got, ok = s.TryResolve(&Gauge[int]{}, cfg)
	require.False(t, ok)
	require.Empty(t, got)
}

func TestRegistryStrategy_NilInputs(t *testing.T) {
	cfg := config.DefaultConfig()

	s := strategy.NewRegistryStrategy(nil)
	_, ok := s.TryResolve(&Panel{}, cfg)
	require.False(t, ok)

	s = strategy.NewRegistryStrategy(registry.New(cfg))
	_, ok = s.TryResolve(nil, cfg)
	require.False(t, ok)
	_, ok = s.TryResolveType(nil, cfg)
	require.False(t, ok)
}

// A small concurrency smoke test to ensure RegistryStrategy + real registry behave well.
func TestRegistryStrategy_WithRealRegistry_Concurrent(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	require.NoError(t, reg.Register(reflect.TypeOf(Panel{}), "ui.panel"))
	require.NoError(t, reg.Register(reflect.TypeOf(Gauge[int]{}), "ui.gauge"))

	s := strategy.NewRegistryStrategy(reg)

	types := []reflect.Type{
		reflect.TypeOf(Panel{}),
		reflect.TypeOf(&Panel{}),
		reflect.TypeOf(&Gauge[int]{}),
	}
	want := []string{"ui.panel", "ui.panel", "ui.gauge"}

	workers := runtime.GOMAXPROCS(0) * 4
	iters := 2000

	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan string, workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				idx := i % len(types)
				got, ok := s.TryResolveType(types[idx], cfg)
				if !ok || got != want[idx] {
					errCh <- got
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for e := range errCh {
		t.Fatalf("concurrent mismatch: got=%q", e)
	}
}
