package internal

import (
	"fmt"
	"loopchat/errors"
	"time"
)

// Config is read from the environment with sane defaults: the pipeline
// itself has no mandatory external surface beyond its UDP port.
type Config struct {
	BatchSize            int           `env:"BATCH_SIZE,default=5"`
	BufferSize           int           `env:"BUFFER_SIZE,default=64"`
	ReadBufferBytes      int           `env:"READ_BUFFER_BYTES,default=2048"`
	ListenPortMin        int           `env:"LISTEN_PORT_MIN,default=10000"`
	ListenPortMax        int           `env:"LISTEN_PORT_MAX,default=65000"`
	BindAttempts         int           `env:"BIND_ATTEMPTS,default=5"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=5s"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=10"`
	CensoredWords        string        `env:"CENSORED_WORDS,default="`
	CharReplacement      string        `env:"CHARACTER_REPLACEMENT,default=*"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
}

func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return errors.ErrBatchSize
	}
	if c.ListenPortMin < 1 || c.ListenPortMax > 65535 || c.ListenPortMin >= c.ListenPortMax {
		return fmt.Errorf("invalid listen port range [%d, %d)", c.ListenPortMin, c.ListenPortMax)
	}
	return nil
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
