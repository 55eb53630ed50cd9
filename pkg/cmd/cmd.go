// Copyright 2024 Wordmill Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/wordmill/wordmill/pkg/cmd/index"
	"github.com/wordmill/wordmill/pkg/cmd/server"
)

// NewCmd creates the root command of wordmill.
func NewCmd() *cobra.Command {
	command := &cobra.Command{
		Use:          "wordmill",
		Short:        "wordmill is a beat ingest service and word indexing toolkit",
		SilenceUsage: true,
	}
	command.AddCommand(server.NewCmdServer())
	command.AddCommand(index.NewCmdIndex())
	return command
}

// Run runs the root command and exits non-zero on error.
func Run() {
	cmd := NewCmd()
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
