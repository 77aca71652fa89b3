// Copyright 2025 Linh Pham
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/questionlp/wwdtm-import-location-latlong/config"
)

var (
	lookupConfig string
	lookupSeed   string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <location>",
	Short: "Resolves a single location through the configured geocoders",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := config.Load(lookupConfig)
		if err != nil {
			return err
		}

		geocoder, err := buildGeocoder(cfg, lookupSeed)
		if err != nil {
			return err
		}

		result, err := geocoder.Geocode(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", result.DisplayName)
		fmt.Printf("  coordinates: %s\n", result.Point)
		fmt.Printf("  provider:    %s (%s confidence)\n", result.Provider, result.Confidence)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringVar(
		&lookupConfig,
		"config",
		"config.json",
		"Path to the JSON configuration file",
	)
	lookupCmd.Flags().StringVar(
		&lookupSeed,
		"seed",
		"",
		"JSON lookup table consulted before remote geocoding providers",
	)
}
