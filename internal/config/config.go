// Package config loads service configuration from the environment.
// Only non-secret settings are kept here; the submit token is resolved
// separately by the token package.
package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the service settings.
type Config struct {
	ListenAddr  string        `env:"LISTEN_ADDR" env-default:":8000"`
	MongoURI    string        `env:"MONGO_URI" env-default:"mongodb://localhost:27017/"`
	MongoDB     string        `env:"MONGO_DB" env-default:"student_db"`
	RedisAddr   string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" env-default:"3s"`

	// ReadTimeout and WriteTimeout bound a single HTTP exchange. Writes are
	// given more room because a batch may issue many store calls.
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" env-default:"30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" env-default:"120s"`
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	var c Config
	if err := cleanenv.ReadEnv(&c); err != nil {
		return c, err
	}
	return c, nil
}
