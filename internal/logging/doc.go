// Package logging builds the slog loggers used across the analyzer: a
// human-oriented console handler with component prefixes and flattened k=v
// attributes, plus a JSON variant for machine consumption.
package logging
