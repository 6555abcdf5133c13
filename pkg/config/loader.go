package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load populates a configuration struct from environment variables using
// `env` tags. Slice fields split on the tag's envSeparator, which is how
// the service reads its Kafka broker list.
//
//	type Config struct {
//	    HTTPPort     int      `env:"SEARCH_HTTP_PORT" envDefault:"8010"`
//	    KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
