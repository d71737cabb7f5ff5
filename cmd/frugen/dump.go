// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alatarum/frugen-sub000"
	"github.com/alatarum/frugen-sub000/internal/log"
)

func parseFlagBits(cmd *cobra.Command) fru.Flags {
	var flags fru.Flags
	if b, _ := cmd.Flags().GetBool("ignore-version"); b {
		flags |= fru.IgnoreFileVersion | fru.IgnoreAreaVersion | fru.IgnoreRecordVersion
	}
	if b, _ := cmd.Flags().GetBool("ignore-checksums"); b {
		flags |= fru.IgnoreFileChecksum | fru.IgnoreAreaChecksum | fru.IgnoreRecordHeaderChecksum | fru.IgnoreRecordDataChecksum
	}
	if b, _ := cmd.Flags().GetBool("ignore-eof"); b {
		flags |= fru.IgnoreAreaEOF | fru.IgnoreRecordNoEOL
	}
	if b, _ := cmd.Flags().GetBool("big-file"); b {
		flags |= fru.IgnoreBigFile
	}
	return flags
}

func addRelaxedFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("ignore-version", false, "accept any version byte")
	cmd.Flags().Bool("ignore-checksums", false, "skip all checksum validation")
	cmd.Flags().Bool("ignore-eof", false, "tolerate a missing area/record terminator")
	cmd.Flags().Bool("big-file", false, "accept a file larger than the default size bound")
}

func newDumpCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Parse a FRU file and print its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &fru.Options{
				Flags:  parseFlagBits(cmd),
				Logger: log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(log.LevelWarn)),
			}
			f, err := fru.LoadFile(args[0], opts)
			if err != nil {
				return err
			}
			if asJSON {
				data, jerr := fru.ToJSON(f)
				if jerr != nil {
					return jerr
				}
				fmt.Println(string(data))
				return nil
			}
			fmt.Println(fru.Dump(f))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parsed model as JSON instead of a human summary")
	addRelaxedFlags(cmd)
	return cmd
}
