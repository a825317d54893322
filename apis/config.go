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

package apis

// Config carries read-only labelling knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MinLabelLength is the shortest type name used verbatim as a label.
	// Shorter (or empty) names are replaced by a synthetic label.
	MinLabelLength int `yaml:"min_label_length"`

	// SyntheticPrefix starts every synthetic label.
	SyntheticPrefix string `yaml:"synthetic_prefix"`

	// SignalPrefix is prepended to a signal's name to form its node label.
	SignalPrefix string `yaml:"signal_prefix"`

	// QualifyPackage controls whether reflect-derived labels carry the last
	// element of the package path ("widgets.Item" instead of "Item").
	QualifyPackage bool `yaml:"qualify_package"`

	// MaxDepth limits pointer unwrapping and lineage walks.
	// Acts as a safety guard against pathological embedding chains.
	MaxDepth int `yaml:"max_depth"`
}
