package config

const (
	defaultOutputDir = "~/.local/share/raman/reports"
	defaultLogDir    = "~/.local/share/raman/logs"
	defaultDataDir   = "~/.local/share/raman"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultProminence = 0.005
	defaultHeight     = 0.005
	defaultWidth      = 2
	defaultDistance   = 3
	defaultTolerance  = 5.0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			DataDir:   defaultDataDir,
		},
		Detection: Detection{
			Prominence: defaultProminence,
			Height:     defaultHeight,
			Width:      defaultWidth,
			Distance:   defaultDistance,
			Shoulders:  true,
		},
		Matching: Matching{
			Tolerance: defaultTolerance,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
