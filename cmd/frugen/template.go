// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/alatarum/frugen-sub000"
)

func newTemplateCmd() *cobra.Command {
	var out string
	var in string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Emit a blank FRU model as JSON, or build a binary FRU file from one",
		Long: "With --out only, writes a freshly-initialized FRU model as JSON to --out, " +
			"ready to be hand-edited. With --in as well, reads that JSON and writes the " +
			"resulting binary FRU file to --out instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return cmd.Help()
			}

			if in == "" {
				f := fru.NewFRU()
				data, err := fru.ToJSON(f)
				if err != nil {
					return err
				}
				return os.WriteFile(out, data, 0o644)
			}

			data, oerr := os.ReadFile(in)
			if oerr != nil {
				return oerr
			}
			f, err := fru.FromJSON(data)
			if err != nil {
				return err
			}
			if serr := fru.SaveFile(f, out); serr != nil {
				return serr
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output path (JSON template, or binary FRU when --in is given)")
	cmd.Flags().StringVar(&in, "in", "", "input JSON model to build a binary FRU file from")
	return cmd
}
