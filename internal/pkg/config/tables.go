package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/99minutos/carrier-rating/internal/core/rating"
)

// LoadTables returns the built-in rating tables overlaid with the YAML file at
// path. An empty path returns the defaults unchanged.
//
//	region_distances:
//	  ON-QC: 340
//	accessorial_fees:
//	  white_glove: {label: White Glove, fee: 120}
func LoadTables(path string) (rating.Tables, error) {
	defaults := rating.DefaultTables()
	if path == "" {
		return defaults, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return rating.Tables{}, fmt.Errorf("read rating tables: %w", err)
	}

	var overrides rating.Tables
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return rating.Tables{}, fmt.Errorf("parse rating tables %s: %w", path, err)
	}
	return defaults.Merge(overrides), nil
}
