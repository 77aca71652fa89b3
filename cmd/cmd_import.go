// Copyright 2025 Linh Pham
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // register mysql driver
	"github.com/spf13/cobra"

	"github.com/questionlp/wwdtm-import-location-latlong/config"
	"github.com/questionlp/wwdtm-import-location-latlong/geocode"
	"github.com/questionlp/wwdtm-import-location-latlong/locations"
)

var (
	importOptions = &locations.Options{}
	importFile    string
	importConfig  string
	importSeed    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Imports latitude/longitude values from a CSV file into the database",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(importConfig)
		if err != nil {
			return err
		}

		var geocoder geocode.Geocoder
		if importOptions.Geocode {
			geocoder, err = buildGeocoder(cfg, importSeed)
			if err != nil {
				return err
			}
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := locations.NewLocationRepository(db)
		importer := locations.NewImporter(importOptions, repo, geocoder)

		return importer.Run(importFile)
	},
}

// openDatabase connects to the stats database and verifies the connection
// up front so a bad configuration aborts before the CSV is touched.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return db, nil
}

// buildGeocoder assembles the provider chain: the lookup table seed first
// when one is given, then the configured remote provider.
func buildGeocoder(cfg *config.Config, seedPath string) (geocode.Geocoder, error) {
	var chain geocode.Chain

	if seedPath != "" {
		table, err := geocode.LoadTableGeocoder(seedPath)
		if err != nil {
			return nil, fmt.Errorf("loading lookup table: %w", err)
		}

		chain = append(chain, table)
	}

	switch cfg.Geocoder.Provider {
	case "", "table":
	case "google":
		if cfg.Geocoder.APIKey == "" {
			return nil, errors.New("geocoder: google provider requires api_key")
		}

		chain = append(chain, geocode.NewGoogleMapsGeocoder(cfg.Geocoder.APIKey, cfg.Geocoder.Region))
	default:
		return nil, fmt.Errorf("geocoder: unknown provider %q", cfg.Geocoder.Provider)
	}

	if len(chain) == 0 {
		return nil, errors.New("geocoder: no providers configured; set geocoder.provider or pass --seed")
	}

	return chain, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(
		&importFile,
		"file",
		"f",
		"",
		"CSV file containing location information, including latitude and longitude fields",
	)
	_ = importCmd.MarkFlagRequired("file")
	importCmd.Flags().StringVar(
		&importConfig,
		"config",
		"config.json",
		"Path to the JSON configuration file",
	)
	importCmd.Flags().BoolVar(
		&importOptions.DryRun,
		"dry-run",
		false,
		"Resolve every row but don't persist any change",
	)
	importCmd.Flags().BoolVar(
		&importOptions.Geocode,
		"geocode",
		false,
		"Geocode rows whose latitude/longitude fields are empty",
	)
	importCmd.Flags().StringVar(
		&importSeed,
		"seed",
		"",
		"JSON lookup table consulted before remote geocoding providers",
	)
}
