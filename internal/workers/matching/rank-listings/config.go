// internal/workers/matching/rank-listings/config.go
package ranklistings

import "time"

type Config struct {
	MaxItems int
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxItems: 100,
		Timeout:  30 * time.Second,
	}
}
