// Copyright 2025 Linh Pham
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/questionlp/wwdtm-import-location-latlong/config"
	"github.com/questionlp/wwdtm-import-location-latlong/locations"
)

var (
	exportFile   string
	exportConfig string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports locations missing latitude/longitude to a CSV file",
	Long: `
Writes a CSV file of every location whose latitude or longitude is unset,
in the same format the import command accepts. Fill in the coordinate
columns by hand, or re-import the file with --geocode to resolve them
through the configured geocoders.
`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(exportConfig)
		if err != nil {
			return err
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := locations.NewLocationRepository(db)

		missing, err := repo.MissingCoordinates()
		if err != nil {
			return err
		}

		if err := locations.WriteFile(exportFile, missing); err != nil {
			return err
		}

		log.Printf("Exported %d locations without coordinates to %s", len(missing), exportFile)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(
		&exportFile,
		"file",
		"f",
		"",
		"Destination CSV file",
	)
	_ = exportCmd.MarkFlagRequired("file")
	exportCmd.Flags().StringVar(
		&exportConfig,
		"config",
		"config.json",
		"Path to the JSON configuration file",
	)
}
