package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Option configures a single Load call.
type Option func(*options)

type options struct {
	prefix   string
	envFiles []string
	overlay  map[string]string
}

// WithPrefix prepends prefix to every env tag, e.g. "FEATURE_" turns
// `env:"ENDPOINT"` into FEATURE_ENDPOINT.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles reads additional dotenv files. Values from the files never
// override variables already present in the process environment.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) { o.envFiles = append(o.envFiles, paths...) }
}

// WithOverlay takes precedence over both the process environment and env files.
// Handy for command line flags and tests.
func WithOverlay(values map[string]string) Option {
	return func(o *options) {
		if o.overlay == nil {
			o.overlay = make(map[string]string, len(values))
		}
		maps.Copy(o.overlay, values)
	}
}

// Load parses environment variables into the struct pointed to by v.
//
// The default .env file in the working directory is loaded into the process
// environment once per process; a missing file is not an error.
//
// Example:
//
//	type SourceConfig struct {
//		Endpoint string        `env:"ENDPOINT,required"`
//		Timeout  time.Duration `env:"TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg SourceConfig
//	if err := config.Load(&cfg, config.WithPrefix("FEATURE_")); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	defaultEnvLoaded.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	environment := make(map[string]string)
	if len(o.envFiles) > 0 {
		fileValues, err := godotenv.Read(o.envFiles...)
		if err != nil {
			return errors.Join(ErrReadingEnvFile, err)
		}
		maps.Copy(environment, fileValues)
	}
	maps.Copy(environment, env.ToMap(os.Environ()))
	maps.Copy(environment, o.overlay)

	if err := env.ParseWithOptions(v, env.Options{
		Environment: environment,
		Prefix:      o.prefix,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}
