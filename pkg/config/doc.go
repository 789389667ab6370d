// Package config loads environment-driven configuration into tagged structs.
//
// It wraps github.com/caarlos0/env for struct parsing and
// github.com/joho/godotenv for dotenv files. Each Load call builds the lookup
// environment from three layers, lowest precedence first: explicitly requested
// env files, the process environment, and an optional overlay.
//
// # Usage
//
//	type HTTPSourceConfig struct {
//		Endpoint string        `env:"ENDPOINT,required"`
//		Timeout  time.Duration `env:"TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg HTTPSourceConfig
//	config.MustLoad(&cfg, config.WithPrefix("FEATURE_"))
//
// # Error Handling
//
// Errors are joined with package sentinels so they can be matched with errors.Is:
//
//	if err := config.Load(&cfg); errors.Is(err, config.ErrParsingConfig) {
//		// A required variable is missing or malformed
//	}
package config
