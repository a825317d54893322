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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dirpx.dev/hat"
	"dirpx.dev/hat/config"
	"dirpx.dev/hat/internal/obs"
)

var version = "dev"

type rootOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "hatls",
		Short:         "Query behavioral hats worn by a document outline",
		Long:          `hatls builds a document from a YAML outline, attaches the hats the outline names and lets you inspect labels, run queries and emit signals.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.apply(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		"hat config file (YAML)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"log hat activity to stderr")

	cmd.AddCommand(
		newTreeCmd(),
		newFindCmd(),
		newSignalCmd(),
		newListCmd(),
	)
	return cmd
}

func (o *rootOptions) apply(cmd *cobra.Command) error {
	level := zerolog.WarnLevel
	if o.verbose {
		level = zerolog.DebugLevel
	}
	hat.SetLogger(obs.NewConsole(cmd.ErrOrStderr(), "hatls", level))

	if o.configFile == "" {
		return nil
	}
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	hat.SetConfig(cfg)
	return nil
}
