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

package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"dirpx.dev/hat"
	"dirpx.dev/hat/apis"
	"dirpx.dev/hat/dom"
)

// Outline is one node of a YAML document outline.
type Outline struct {
	Name     string    `yaml:"name"`
	ID       string    `yaml:"id"`
	Hat      string    `yaml:"hat"`
	Title    string    `yaml:"title"`
	Signals  []string  `yaml:"signals"`
	Children []Outline `yaml:"children"`
}

// Thing is the base of the demo hats that carry a title.
type Thing struct {
	hat.Base
	Title string `json:"title"`
}

// Item is an entry inside a Folder.
type Item struct {
	Thing
}

// Folder groups items.
type Folder struct {
	hat.Base
	Title string `json:"title"`
}

// Titled is implemented by every demo hat.
type Titled interface {
	apis.Hat
	Label() string
}

func (t *Thing) Label() string  { return t.Title }
func (f *Folder) Label() string { return f.Title }

// kinds maps outline hat names to constructors.
var kinds = map[string]func(n *dom.Node, title string) Titled{
	"thing":  func(n *dom.Node, title string) Titled { return &Thing{Base: hat.NewBase(n), Title: title} },
	"item":   func(n *dom.Node, title string) Titled { return &Item{Thing{Base: hat.NewBase(n), Title: title}} },
	"folder": func(n *dom.Node, title string) Titled { return &Folder{Base: hat.NewBase(n), Title: title} },
}

func kindNames() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Handler receives every signal a hat subscribed to in the outline.
type Handler func(h Titled, signal, arg string)

// Scene is a document built from an outline.
type Scene struct {
	Doc     *dom.Document
	ByID    map[string]*dom.Node
	Signals map[string]*hat.Signal[string]
}

// LoadScene reads an outline file and builds its scene.
func LoadScene(path string, on Handler) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}
	return ParseScene(data, on)
}

// ParseScene builds a scene from outline YAML. The top-level outline
// describes the document root.
func ParseScene(data []byte, on Handler) (*Scene, error) {
	var root Outline
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse outline: %w", err)
	}
	s := &Scene{
		Doc:     dom.NewDocument(),
		ByID:    make(map[string]*dom.Node),
		Signals: make(map[string]*hat.Signal[string]),
	}
	if err := s.dress(s.Doc.Root(), root, on); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) dress(n *dom.Node, o Outline, on Handler) error {
	if o.ID != "" {
		if _, dup := s.ByID[o.ID]; dup {
			return fmt.Errorf("duplicate id %q", o.ID)
		}
		s.ByID[o.ID] = n
	}
	if o.Hat != "" {
		mk, ok := kinds[o.Hat]
		if !ok {
			return fmt.Errorf("node %q: unknown hat %q (known: %v)", o.Name, o.Hat, kindNames())
		}
		h := mk(n, o.Title)
		reg := hat.Wear(h)
		for _, name := range o.Signals {
			if name == "" {
				return fmt.Errorf("node %q: empty signal name", o.Name)
			}
			sig := s.Signal(name)
			reg.On(sig.Bind(func(arg string) {
				if on != nil {
					on(h, name, arg)
				}
			}))
		}
	} else if len(o.Signals) > 0 {
		return fmt.Errorf("node %q: signals need a hat", o.Name)
	}

	for _, c := range o.Children {
		name := c.Name
		if name == "" {
			name = "div"
		}
		child := s.Doc.CreateElement(name)
		if err := n.AppendChild(child); err != nil {
			return err
		}
		if err := s.dress(child, c, on); err != nil {
			return err
		}
	}
	return nil
}

// Signal returns the scene's signal with the given name, declaring it on
// first use.
func (s *Scene) Signal(name string) *hat.Signal[string] {
	sig, ok := s.Signals[name]
	if !ok {
		sig = hat.NewSignal[string](name)
		s.Signals[name] = sig
	}
	return sig
}

// Node returns the node with the given outline id, or the root for "".
func (s *Scene) Node(id string) (*dom.Node, error) {
	if id == "" {
		return s.Doc.Root(), nil
	}
	n, ok := s.ByID[id]
	if !ok {
		return nil, fmt.Errorf("no node with id %q", id)
	}
	return n, nil
}
