package config

const (
	defaultLogLevel  = "warn"
	defaultLogFormat = "auto"
	defaultWorkers   = 4
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: Log{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Matrix: Matrix{
			Workers: defaultWorkers,
		},
		Rank: Rank{
			Threshold: 0,
			Top:       0,
		},
	}
}
