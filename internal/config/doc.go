// Package config provides configuration management for the sales audit pipeline.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// Command-line flags in cmd/salesaudit are applied on top of the loaded
// configuration.
//
// # Environment Variables
//
// All environment variables follow the pattern SALESAUDIT_<SECTION>_<FIELD>:
//
//	SALESAUDIT_PIPELINE_INPUT_FILE=sales.csv
//	SALESAUDIT_PIPELINE_OUTPUT_FILE=audit.csv
//	SALESAUDIT_PIPELINE_PREVIEW_ROWS=5
//	SALESAUDIT_LOGGING_LEVEL=debug
//	SALESAUDIT_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/salesaudit.prom
//
// # Validation
//
// The loaded configuration is validated with go-playground/validator struct
// tags. The audit thresholds are business constants and are not configurable.
package config
