// Package config holds the runtime settings of gtcidash.
//
// Settings come from three layers applied in order: built-in defaults from
// NewConfig, an optional YAML file (.gtcidash in the working directory or the
// home directory, or an explicit --config path), and finally command line
// flags. Validate is called once after all layers have been applied.
package config
