// internal/workers/transfer/validate-transfer-profile/config.go
package validatetransferprofile

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
