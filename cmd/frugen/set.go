// Copyright 2024 The frugen Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alatarum/frugen-sub000"
)

func parseAreaName(name string) (fru.AreaType, error) {
	switch strings.ToLower(name) {
	case "internal", "internal-use":
		return fru.AreaInternalUse, nil
	case "chassis":
		return fru.AreaChassis, nil
	case "board":
		return fru.AreaBoard, nil
	case "product":
		return fru.AreaProduct, nil
	case "multirecord", "mr":
		return fru.AreaMultirecord, nil
	default:
		return 0, fmt.Errorf("unknown area %q", name)
	}
}

func parseAfter(name string) (fru.AreaType, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return fru.Auto, nil
	case "first":
		return fru.First, nil
	case "last":
		return fru.Last, nil
	default:
		return parseAreaName(name)
	}
}

func newSetCmd() *cobra.Command {
	var in, out string
	var chassisType uint8
	var chassisPN, chassisSN string
	var boardMfg, boardProduct, boardSN, boardPN, boardFileID string
	var boardDate string
	var boardAuto bool
	var productMfg, productName, productPN, productVersion, productSN, productAsset, productFileID string
	var internalHex string
	var enableArea, disableArea, afterArea string

	cmd := &cobra.Command{
		Use:   "set <file>",
		Short: "Edit a FRU file's mandatory fields, area layout, or internal-use payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &fru.Options{Flags: parseFlagBits(cmd)}
			f, err := fru.LoadFile(args[0], opts)
			if err != nil {
				return err
			}

			setMandatory := func(area fru.AreaType, index int, value string) error {
				if value == "" {
					return nil
				}
				if serr := f.SetField(area, index, fru.EncodingAuto, value); serr != nil {
					return serr
				}
				return nil
			}

			if cmd.Flags().Changed("chassis-type") {
				f.Chassis.Type = chassisType
			}
			if err := setMandatory(fru.AreaChassis, 0, chassisPN); err != nil {
				return err
			}
			if err := setMandatory(fru.AreaChassis, 1, chassisSN); err != nil {
				return err
			}

			if err := setMandatory(fru.AreaBoard, 0, boardMfg); err != nil {
				return err
			}
			if err := setMandatory(fru.AreaBoard, 1, boardProduct); err != nil {
				return err
			}
			if err := setMandatory(fru.AreaBoard, 2, boardSN); err != nil {
				return err
			}
			if err := setMandatory(fru.AreaBoard, 3, boardPN); err != nil {
				return err
			}
			if err := setMandatory(fru.AreaBoard, 4, boardFileID); err != nil {
				return err
			}
			if boardAuto {
				f.Board.AutoTimestamp = true
			} else if boardDate != "" {
				t, terr := time.Parse(time.RFC3339, boardDate)
				if terr != nil {
					return terr
				}
				f.Board.SetDate(t)
			}

			if err := setMandatory(fru.AreaProduct, 0, productMfg); err != nil {
				return err
			}
			if err := setMandatory(fru.AreaProduct, 1, productName); err != nil {
				return err
			}
			if err := setMandatory(fru.AreaProduct, 2, productPN); err != nil {
				return err
			}
			if err := setMandatory(fru.AreaProduct, 3, productVersion); err != nil {
				return err
			}
			if err := setMandatory(fru.AreaProduct, 4, productSN); err != nil {
				return err
			}
			if err := setMandatory(fru.AreaProduct, 5, productAsset); err != nil {
				return err
			}
			if err := setMandatory(fru.AreaProduct, 6, productFileID); err != nil {
				return err
			}

			if internalHex != "" {
				if serr := f.SetInternalHexString(internalHex); serr != nil {
					return serr
				}
			}

			if disableArea != "" {
				area, aerr := parseAreaName(disableArea)
				if aerr != nil {
					return aerr
				}
				if serr := f.DisableArea(area); serr != nil {
					return serr
				}
			}
			if enableArea != "" {
				area, aerr := parseAreaName(enableArea)
				if aerr != nil {
					return aerr
				}
				after, aerr := parseAfter(afterArea)
				if aerr != nil {
					return aerr
				}
				if serr := f.EnableArea(area, after); serr != nil {
					return serr
				}
			}

			if out == "" {
				out = args[0]
			}
			if serr := fru.SaveFile(f, out); serr != nil {
				return serr
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output path (defaults to overwriting the input file)")

	cmd.Flags().Uint8Var(&chassisType, "chassis-type", 0, "SMBIOS chassis type code")
	cmd.Flags().StringVar(&chassisPN, "chassis-pn", "", "chassis part number")
	cmd.Flags().StringVar(&chassisSN, "chassis-sn", "", "chassis serial number")

	cmd.Flags().StringVar(&boardMfg, "board-mfg", "", "board manufacturer")
	cmd.Flags().StringVar(&boardProduct, "board-product", "", "board product name")
	cmd.Flags().StringVar(&boardSN, "board-sn", "", "board serial number")
	cmd.Flags().StringVar(&boardPN, "board-pn", "", "board part number")
	cmd.Flags().StringVar(&boardFileID, "board-file-id", "", "board FRU file ID")
	cmd.Flags().StringVar(&boardDate, "board-date", "", "board manufacture date, RFC3339 (e.g. 1996-01-01T00:01:00Z)")
	cmd.Flags().BoolVar(&boardAuto, "board-auto-timestamp", false, "use the current time as the board manufacture date on save")

	cmd.Flags().StringVar(&productMfg, "product-mfg", "", "product manufacturer")
	cmd.Flags().StringVar(&productName, "product-name", "", "product name")
	cmd.Flags().StringVar(&productPN, "product-pn", "", "product part number")
	cmd.Flags().StringVar(&productVersion, "product-version", "", "product version")
	cmd.Flags().StringVar(&productSN, "product-sn", "", "product serial number")
	cmd.Flags().StringVar(&productAsset, "product-asset", "", "product asset tag")
	cmd.Flags().StringVar(&productFileID, "product-file-id", "", "product FRU file ID")

	cmd.Flags().StringVar(&internalHex, "internal-hex", "", "internal-use area payload, as a hex string")

	cmd.Flags().StringVar(&enableArea, "enable", "", "area to enable (internal, chassis, board, product, multirecord)")
	cmd.Flags().StringVar(&disableArea, "disable", "", "area to disable")
	cmd.Flags().StringVar(&afterArea, "after", "", "position for --enable: auto, first, last, or an area name")

	addRelaxedFlags(cmd)
	return cmd
}
