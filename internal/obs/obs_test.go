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

package obs_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"dirpx.dev/hat/internal/obs"
)

func TestSetLogger(t *testing.T) {
	prev := *obs.Logger()
	t.Cleanup(func() { obs.SetLogger(prev) })

	var buf bytes.Buffer
	obs.SetLogger(zerolog.New(&buf))
	obs.Logger().Info().Str("k", "v").Msg("hello")

	require.Contains(t, buf.String(), `"k":"v"`)
	require.Contains(t, buf.String(), `"message":"hello"`)
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l := obs.NewConsole(&buf, "hatls", zerolog.InfoLevel)

	l.Debug().Msg("hidden")
	l.Info().Msg("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "hatls")
}

func TestRecordWithoutProvider(t *testing.T) {
	require.NotPanics(t, func() {
		obs.RecordWorn(context.Background(), "Item")
		obs.RecordEmit(context.Background(), "signal:ping", 3)
	})
	require.NotNil(t, obs.Tracer())
}
