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

package registry_test

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/hat/apis"
	"dirpx.dev/hat/config"
	"dirpx.dev/hat/registry"
)

type C0 struct{}
type C1 struct{}
type C2 struct{}
type C3 struct{}
type C4 struct{}

// TestConcurrentRegisterAndLookup verifies that Register/Lookup/Entries/Count
// are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	types := []reflect.Type{
		reflect.TypeOf(C0{}), reflect.TypeOf(C1{}), reflect.TypeOf(C2{}),
		reflect.TypeOf(C3{}), reflect.TypeOf(C4{}),
	}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				idx := i % len(types)
				if err := reg.Register(types[idx], fmt.Sprintf("c%d", idx)); err != nil {
					errCh <- err
					return
				}
				if got, ok := reg.Lookup(types[idx]); !ok || got != fmt.Sprintf("c%d", idx) {
					errCh <- fmt.Errorf("lookup %v: got (%q,%v)", types[idx], got, ok)
					return
				}
				_ = reg.Entries()
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}
	require.Equal(t, len(types), reg.Count())
	require.Len(t, reg.Entries(), len(types))
}

func labels(entries []apis.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}
