package redis

import "time"

// Config contains translation cache settings. Caching is off when Addr is empty.
type Config struct {
	Addr     string        `env:"CACHE_REDIS_ADDR"`
	Password string        `env:"CACHE_REDIS_PASSWORD"`
	DB       int           `env:"CACHE_REDIS_DB"       envDefault:"0"`
	TTL      time.Duration `env:"CACHE_TTL"            envDefault:"24h"`
	Prefix   string        `env:"CACHE_KEY_PREFIX"     envDefault:"translateflow:answer:"`
}

// Enabled reports whether a Redis address is configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}
