/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	successIcon = "✓"
)

func newSpawnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "spawn <name>",
		Short: "Spawn a pow worker thread and register it under name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			w := newWorld()
			defer w.shutdownAll(cmd.Context())

			worker, err := w.spawnWorker(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s spawned %s as %s\n", successIcon, worker.Tid(), name)
			return nil
		},
	}
}

func newAskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <name> <method> <args>",
		Short: "Spawn a pow worker, register it, then query it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, method, reqArgs := args[0], args[1], args[2]
			w := newWorld()
			defer w.shutdownAll(cmd.Context())

			if _, err := w.spawnWorker(name); err != nil {
				return err
			}
			resp, err := w.ask(cmd.Context(), name, method, reqArgs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "status=%s data=%s\n", resp.Status, resp.Data)
			return nil
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Spawn a few demo workers and list the named registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := newWorld()
			defer w.shutdownAll(cmd.Context())

			demoNames := []string{"worker-a", "worker-b", "worker-c"}
			for _, name := range demoNames {
				if _, err := w.spawnWorker(name); err != nil {
					return err
				}
			}

			tbl := table.New("NAME", "THREAD ID")
			tbl.WithHeaderFormatter(func(format string, vals ...interface{}) string {
				return headerStyle.Render(fmt.Sprintf(format, vals...))
			})
			tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
				return boldStyle.Render(fmt.Sprintf(format, vals...))
			})
			tbl.WithWriter(cmd.OutOrStdout())

			for _, name := range demoNames {
				tid, ok := w.reg.Locate(name)
				if !ok {
					continue
				}
				tbl.AddRow(name, tid.String())
			}
			tbl.Print()
			return nil
		},
	}
}
