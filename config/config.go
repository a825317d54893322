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

package config

import (
	"dirpx.dev/hat/apis"
)

const (
	// DefaultMinLabelLength is the shortest type name used verbatim as a label.
	// Anything shorter is usually a minified or throwaway name.
	DefaultMinLabelLength = 3
	// DefaultSyntheticPrefix starts every synthetic label.
	DefaultSyntheticPrefix = "_hat_"
	// DefaultSignalPrefix is prepended to signal names to form node labels.
	DefaultSignalPrefix = "signal:"
	// DefaultQualifyPackage keeps reflect-derived labels bare ("Item").
	DefaultQualifyPackage = false
	// DefaultMaxDepth bounds pointer unwrapping and lineage walks.
	DefaultMaxDepth = 16
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MinLabelLength:  DefaultMinLabelLength,
		SyntheticPrefix: DefaultSyntheticPrefix,
		SignalPrefix:    DefaultSignalPrefix,
		QualifyPackage:  DefaultQualifyPackage,
		MaxDepth:        DefaultMaxDepth,
	}
}

// sanitize restores defaults for values that would break label uniqueness.
func sanitize(cfg apis.Config) apis.Config {
	if cfg.MinLabelLength < 0 {
		cfg.MinLabelLength = DefaultMinLabelLength
	}
	if cfg.SyntheticPrefix == "" {
		cfg.SyntheticPrefix = DefaultSyntheticPrefix
	}
	if cfg.SignalPrefix == "" {
		cfg.SignalPrefix = DefaultSignalPrefix
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMinLabelLength sets the MinLabelLength option.
// A negative value resets to the default.
func WithMinLabelLength(n int) Option {
	return func(c *apis.Config) {
		if n < 0 {
			c.MinLabelLength = DefaultMinLabelLength
			return
		}
		c.MinLabelLength = n
	}
}

// WithSyntheticPrefix sets the SyntheticPrefix option.
func WithSyntheticPrefix(prefix string) Option {
	return func(c *apis.Config) {
		c.SyntheticPrefix = prefix
	}
}

// WithSignalPrefix sets the SignalPrefix option.
func WithSignalPrefix(prefix string) Option {
	return func(c *apis.Config) {
		c.SignalPrefix = prefix
	}
}

// WithQualifyPackage sets the QualifyPackage option.
func WithQualifyPackage(qualify bool) Option {
	return func(c *apis.Config) {
		c.QualifyPackage = qualify
	}
}

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}
