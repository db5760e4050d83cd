package config // package config loads application configuration from environment variables

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // APP_TIMEZONE must resolve on images without a zoneinfo database

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
)

// Config holds all runtime configuration values.  Each nested struct maps
// to an environment variable prefix, e.g. DB.Host is read from DB_HOST.
type Config struct {
	App struct {
		Env         string `envconfig:"ENV" default:"dev"`                      // application environment (dev/test/prod)
		Port        string `envconfig:"PORT" default:"8080"`                    // HTTP port to listen on
		Timezone    string `envconfig:"TIMEZONE" default:"Asia/Tashkent"`       // wall clock used for booking start times
		ServiceName string `envconfig:"SERVICE_NAME" default:"armhub-seatdesk"` // attached to every log line
	} `envconfig:"APP"`

	Log struct {
		Level  string `envconfig:"LEVEL" default:"info"`
		Format string `envconfig:"FORMAT" default:"json"` // json | console
	} `envconfig:"LOG"`

	DB struct {
		User         string `envconfig:"USER"`
		Pass         string `envconfig:"PASS"` // empty allowed
		Host         string `envconfig:"HOST" default:"localhost"`
		Port         string `envconfig:"PORT" default:"3306"`
		Name         string `envconfig:"NAME"`
		MaxOpenConns int    `envconfig:"MAX_OPEN_CONNS" default:"25"`
	} `envconfig:"DB"`

	Redis RedisConfig `envconfig:"REDIS"`

	AMQP struct {
		URL      string `envconfig:"URL"` // empty disables event publishing
		Queue    string `envconfig:"QUEUE" default:"seat.events"`
		AuditLog string `envconfig:"AUDIT_LOG" default:"logs/seat_events.log"`
	} `envconfig:"AMQP"`

	JWT struct {
		Secret       string `envconfig:"SECRET"`
		AccessTTLMin int    `envconfig:"ACCESS_TTL_MIN" default:"60"`
	} `envconfig:"JWT"`

	BcryptCost  int      `envconfig:"BCRYPT_COST" default:"12"`
	AdminEmails []string `envconfig:"ADMIN_EMAILS"` // comma separated; always granted the ADMIN role at login

	Seats struct {
		ReadingCapacity    int `envconfig:"READING_CAPACITY" default:"30"`
		ElectronicCapacity int `envconfig:"ELECTRONIC_CAPACITY" default:"18"`
	} `envconfig:"SEATS"`

	Booking struct {
		GuardEnabled bool `envconfig:"GUARD_ENABLED" default:"true"` // unique claim per seat slot
	} `envconfig:"BOOKING"`

	Reaper struct {
		Enabled  bool          `envconfig:"ENABLED" default:"false"`
		Interval time.Duration `envconfig:"INTERVAL" default:"1m"`
	} `envconfig:"REAPER"`

	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
	Cache     CacheConfig     `envconfig:"CACHE"`
}

// Load reads an optional .env file and then the process environment.  A
// missing .env file is not an error; malformed values are.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	cfg.RateLimit.normalize()
	cfg.Cache.normalize()
	for i, e := range cfg.AdminEmails {
		cfg.AdminEmails[i] = strings.ToLower(strings.TrimSpace(e))
	}
	if cfg.Seats.ReadingCapacity < 1 || cfg.Seats.ElectronicCapacity < 1 {
		return Config{}, fmt.Errorf("seat capacities must be positive")
	}
	return cfg, nil
}

// Capacities returns the configured number of seats per room.
func (c Config) Capacities() model.Capacities {
	return model.Capacities{
		model.RoomReading:    c.Seats.ReadingCapacity,
		model.RoomElectronic: c.Seats.ElectronicCapacity,
	}
}

// Location resolves App.Timezone, falling back to the host zone when the
// name is unknown to the local tz database.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// IsAdminEmail reports whether email is listed in ADMIN_EMAILS.
func (c Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.AdminEmails {
		if e != "" && e == email {
			return true
		}
	}
	return false
}
