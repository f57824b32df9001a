package sendnotification

import (
	"fmt"
	"time"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	Timeout      time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		EmailEnabled: false,
		SMSEnabled:   false,
		Timeout:      30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
