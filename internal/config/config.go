package config

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/clock"
	"github.com/caarlos0/env"
)

type config struct {
	Production   bool          `env:"PRODUCTION" envDefault:"false"`
	Port         string        `env:"PORT" envDefault:"80"`
	PostgresUrl  string        `env:"POSTGRES_URL,required"`
	RedisUrl     string        `env:"REDIS_URL" envDefault:"redis:6379"`
	Secret       string        `env:"SECRET,required"`
	JwtTTL       time.Duration `env:"TOKEN_TTL" envDefault:"20m"`
	LockTTL      time.Duration `env:"LOCK_TTL" envDefault:"10s"`
	LockWait     time.Duration `env:"LOCK_WAIT" envDefault:"3s"`
	Timezone     string        `env:"TIMEZONE" envDefault:"UTC"`
	ICSProductID string        `env:"ICS_PRODUCT_ID" envDefault:"-//calendar-reminder-backend//EN"`
}

var (
	conf     config
	location *time.Location
)

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	loc, err := clock.LoadLocation(conf.Timezone)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: TIMEZONE: %v", err))
	}
	location = loc
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func RedisURL() string {
	return conf.RedisUrl
}

func Secret() string {
	return conf.Secret
}

func JwtTTL() time.Duration {
	return conf.JwtTTL
}

// LockTTL is how long an event lock survives a crashed holder.
func LockTTL() time.Duration {
	return conf.LockTTL
}

// LockWait is how long a request waits for a busy event before giving up.
func LockWait() time.Duration {
	return conf.LockWait
}

// Location is the zone naive request times are interpreted in.
func Location() *time.Location {
	return location
}

func ICSProductID() string {
	return conf.ICSProductID
}
