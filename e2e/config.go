// Package e2e exercises the assembled pipeline in-process, the way an
// operator would use it.
package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BatchSize  int           `envconfig:"E2E_BATCH_SIZE" default:"5"`
	BufferSize int           `envconfig:"E2E_BUFFER_SIZE" default:"64"`
	Timeout    time.Duration `envconfig:"E2E_TIMEOUT" default:"5s"`
}

func FromEnv() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
