// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alatarum/frugen-sub000"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Parse a FRU file and report any warnings without failing on them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &fru.Options{Flags: parseFlagBits(cmd)}
			f, err := fru.LoadFile(args[0], opts)
			if err != nil {
				return err
			}
			warnings := fru.Validate(f)
			if len(warnings) == 0 {
				fmt.Println("no warnings")
				return nil
			}
			for _, w := range warnings {
				fmt.Println(w.String())
			}
			return nil
		},
	}
	addRelaxedFlags(cmd)
	return cmd
}
