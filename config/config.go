// Copyright 2025 Linh Pham
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// Database holds the client settings for the Wait Wait Stats database.
type Database struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// Geocoder holds the settings for the geocoding provider.
type Geocoder struct {
	Provider string `mapstructure:"provider"` // google or table
	APIKey   string `mapstructure:"api_key"`
	Region   string `mapstructure:"region"` // ccTLD region bias, e.g. "us"
}

// Config is the contents of the JSON configuration file.
type Config struct {
	Database Database `mapstructure:"database"`
	Geocoder Geocoder `mapstructure:"geocoder"`
}

// Load reads the JSON configuration file at path. The database section is
// required; a missing or incomplete one fails before any file or database
// work happens.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("geocoder.region", "us")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading configuration file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration file: %w", err)
	}

	if cfg.Database.User == "" || cfg.Database.Database == "" {
		return nil, errors.New("configuration: database section is missing or incomplete")
	}

	return &cfg, nil
}

// DSN builds the go-sql-driver connection string. CLIENT_FOUND_ROWS is
// requested so that UPDATE reports matched rows rather than changed rows,
// and autocommit is forced on to match how the stats database is written
// elsewhere.
func (d *Database) DSN() string {
	c := mysql.NewConfig()
	c.Net = "tcp"
	c.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
	c.User = d.User
	c.Passwd = d.Password
	c.DBName = d.Database
	c.ClientFoundRows = true
	c.Params = map[string]string{"autocommit": "1"}

	return c.FormatDSN()
}
