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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/hat/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	require.Equal(t, config.DefaultMinLabelLength, got.MinLabelLength)
	require.Equal(t, config.DefaultSyntheticPrefix, got.SyntheticPrefix)
	require.Equal(t, config.DefaultSignalPrefix, got.SignalPrefix)
	require.Equal(t, config.DefaultQualifyPackage, got.QualifyPackage)
	require.Equal(t, config.DefaultMaxDepth, got.MaxDepth)
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	require.Equal(t, config.DefaultConfig(), config.NewConfig())
}

func TestWithMinLabelLength(t *testing.T) {
	require.Equal(t, 5, config.NewConfig(config.WithMinLabelLength(5)).MinLabelLength)
	require.Equal(t, 0, config.NewConfig(config.WithMinLabelLength(0)).MinLabelLength)
	require.Equal(t, config.DefaultMinLabelLength, config.NewConfig(config.WithMinLabelLength(-1)).MinLabelLength)
}

func TestWithPrefixes_EmptyFallsBack(t *testing.T) {
	c := config.NewConfig(config.WithSyntheticPrefix("x-"), config.WithSignalPrefix("sig/"))
	require.Equal(t, "x-", c.SyntheticPrefix)
	require.Equal(t, "sig/", c.SignalPrefix)

	c = config.NewConfig(config.WithSyntheticPrefix(""), config.WithSignalPrefix(""))
	require.Equal(t, config.DefaultSyntheticPrefix, c.SyntheticPrefix)
	require.Equal(t, config.DefaultSignalPrefix, c.SignalPrefix)
}

func TestWithMaxDepth_NonPositive_ResetsToDefault(t *testing.T) {
	require.Equal(t, 3, config.NewConfig(config.WithMaxDepth(3)).MaxDepth)
	require.Equal(t, config.DefaultMaxDepth, config.NewConfig(config.WithMaxDepth(0)).MaxDepth)
	require.Equal(t, config.DefaultMaxDepth, config.NewConfig(config.WithMaxDepth(-4)).MaxDepth)
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithQualifyPackage(true),
		config.WithQualifyPackage(false),
		config.WithMaxDepth(2),
		config.WithMaxDepth(5),
	)
	require.False(t, c.QualifyPackage)
	require.Equal(t, 5, c.MaxDepth)
}

func TestParse_OverridesDefaults(t *testing.T) {
	c, err := config.Parse([]byte("min_label_length: 4\nqualify_package: true\n"))
	require.NoError(t, err)
	require.Equal(t, 4, c.MinLabelLength)
	require.True(t, c.QualifyPackage)
	require.Equal(t, config.DefaultSignalPrefix, c.SignalPrefix)
}

func TestParse_Empty(t *testing.T) {
	c, err := config.Parse(nil)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), c)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := config.Parse([]byte("include_builtins: true\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("synthetic_prefix: anon-\nmax_depth: 0\n"), 0o600))

	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "anon-", c.SyntheticPrefix)
	require.Equal(t, config.DefaultMaxDepth, c.MaxDepth)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
