// Package config loads, normalizes, and validates analyzer configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and validates detection thresholds with the
// same bounds the detector enforces. Always obtain settings through this
// package so downstream code receives sanitized paths and canonical values.
package config
