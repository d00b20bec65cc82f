package config

import "fmt"

// Validate ensures the configuration is usable. Detection bounds mirror the
// checks the detector itself enforces so a bad config fails at load time
// rather than mid-analysis.
func (c *Config) Validate() error {
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDetection() error {
	if c.Detection.Prominence < 0 {
		return fmt.Errorf("detection.prominence must be non-negative, got %g", c.Detection.Prominence)
	}
	if c.Detection.Height < 0 {
		return fmt.Errorf("detection.height must be non-negative, got %g", c.Detection.Height)
	}
	if c.Detection.Width < 1 {
		return fmt.Errorf("detection.width must be at least 1 sample, got %d", c.Detection.Width)
	}
	if c.Detection.Distance < 0 {
		return fmt.Errorf("detection.distance must be non-negative, got %d", c.Detection.Distance)
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.Tolerance <= 0 {
		return fmt.Errorf("matching.tolerance must be positive, got %g", c.Matching.Tolerance)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
