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
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/hat"
	"dirpx.dev/hat/apis"
	"dirpx.dev/hat/dom"
)

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree OUTLINE",
		Short: "Print the document with node labels and worn hats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := LoadScene(args[0], nil)
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), s.Doc.Root(), 0)
			return nil
		},
	}
}

func printTree(w io.Writer, n *dom.Node, depth int) {
	line := strings.Repeat("  ", depth) + n.Name()
	if labels := n.Labels(); len(labels) > 0 {
		line += " [" + strings.Join(labels, " ") + "]"
	}
	for _, h := range hat.All(n) {
		line += " " + describe(h)
	}
	fmt.Fprintln(w, line)
	for _, c := range n.Children() {
		printTree(w, c, depth+1)
	}
}

func describe(h apis.Hat) string {
	t, ok := h.(Titled)
	if !ok {
		return fmt.Sprintf("%T", h)
	}
	return fmt.Sprintf("%s(%q)", strings.TrimPrefix(fmt.Sprintf("%T", h), "*main."), t.Label())
}

type findOptions struct {
	kind string
	from string
	mode string
}

func newFindCmd() *cobra.Command {
	opts := &findOptions{}
	cmd := &cobra.Command{
		Use:   "find OUTLINE",
		Short: "Look up hats relative to a node",
		Long: `find runs one hat query starting at the node with the given id.
Modes: under (all below), down (first below), up (self or ancestors),
nearest (closest in tree distance), children, next, previous.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := LoadScene(args[0], nil)
			if err != nil {
				return err
			}
			from, err := s.Node(opts.from)
			if err != nil {
				return err
			}
			run, ok := finders[opts.kind]
			if !ok {
				return fmt.Errorf("unknown kind %q (known: any, %s)", opts.kind, strings.Join(kindNames(), ", "))
			}
			found, err := run(opts.mode, from)
			if err != nil {
				return err
			}
			for _, h := range found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", h.Head().Name(), describe(h))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "any", "hat kind to look for")
	cmd.Flags().StringVarP(&opts.from, "from", "f", "", "outline id of the starting node (default: root)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "under", "query mode")
	return cmd
}

var finders = map[string]func(mode string, from *dom.Node) ([]Titled, error){
	"any":    find[Titled],
	"thing":  find[*Thing],
	"item":   find[*Item],
	"folder": find[*Folder],
}

func find[T Titled](mode string, from *dom.Node) ([]Titled, error) {
	var found []T
	one := func(v T, ok bool) {
		if ok {
			found = append(found, v)
		}
	}
	switch mode {
	case "under":
		found = hat.Under[T](from)
	case "down":
		one(hat.Down[T](from))
	case "up":
		one(hat.Up[T](from))
	case "nearest":
		one(hat.Nearest[T](from))
	case "children":
		found = hat.Children[T](from)
	case "next":
		one(hat.Next[T](from))
	case "previous":
		one(hat.Previous[T](from))
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	out := make([]Titled, len(found))
	for i, v := range found {
		out[i] = v
	}
	return out, nil
}

func newSignalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signal OUTLINE NAME [ARG]",
		Short: "Emit a signal to every subscribed hat",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			s, err := LoadScene(args[0], func(h Titled, signal, arg string) {
				fmt.Fprintf(w, "%s <- %s(%s)\n", describe(h), signal, arg)
			})
			if err != nil {
				return err
			}
			arg := ""
			if len(args) == 3 {
				arg = args[2]
			}
			n := s.Signal(args[1]).EmitContext(cmd.Context(), s.Doc, arg)
			fmt.Fprintf(w, "%d handler(s) invoked\n", n)
			return nil
		},
	}
}

type listOptions struct {
	kind   string
	parent string
}

func newListCmd() *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list OUTLINE",
		Short: "Print the hats among a node's children as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := LoadScene(args[0], nil)
			if err != nil {
				return err
			}
			parent, err := s.Node(opts.parent)
			if err != nil {
				return err
			}
			run, ok := listers[opts.kind]
			if !ok {
				return fmt.Errorf("unknown kind %q (known: any, %s)", opts.kind, strings.Join(kindNames(), ", "))
			}
			data, err := run(parent)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "item", "hat kind of the list")
	cmd.Flags().StringVarP(&opts.parent, "parent", "p", "", "outline id of the parent node (default: root)")
	return cmd
}

var listers = map[string]func(parent *dom.Node) ([]byte, error){
	"any":    listJSON[Titled],
	"thing":  listJSON[*Thing],
	"item":   listJSON[*Item],
	"folder": listJSON[*Folder],
}

func listJSON[T Titled](parent *dom.Node) ([]byte, error) {
	l, err := hat.NewList[T](parent)
	if err != nil {
		return nil, err
	}
	return l.MarshalJSON()
}
