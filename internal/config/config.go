package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"hris"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxOpen  int    `env:"DB_MAX_OPEN" envDefault:"25"`
	DBMaxIdle  int    `env:"DB_MAX_IDLE" envDefault:"10"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	KafkaBroker string `env:"KAFKA_BROKER" envDefault:""`
	JWTSecret   string `env:"JWT_SECRET"`

	// Attendance policy
	CheckInCutoff     string   `env:"CHECK_IN_CUTOFF" envDefault:"08:30"`
	CheckOutCutoff    string   `env:"CHECK_OUT_CUTOFF" envDefault:"17:30"`
	WorkplaceTimezone string   `env:"WORKPLACE_TIMEZONE" envDefault:"UTC"`
	WeekendDays       []string `env:"WEEKEND_DAYS" envDefault:"SATURDAY,SUNDAY" envSeparator:","`
	PartialDayPenalty string   `env:"PARTIAL_DAY_PENALTY" envDefault:"0"`

	// Payroll policy, amounts in the smallest currency unit
	PayRatePerUnit int64 `env:"PAY_RATE_PER_UNIT" envDefault:"100000"`
	PayrollWorkers int   `env:"PAYROLL_WORKERS" envDefault:"8"`

	RetrievalMaxAttempts int           `env:"RETRIEVAL_MAX_ATTEMPTS" envDefault:"3"`
	RetrievalBaseDelay   time.Duration `env:"RETRIEVAL_BASE_DELAY" envDefault:"200ms"`
	CalendarCacheTTL     time.Duration `env:"CALENDAR_CACHE_TTL" envDefault:"1h"`

	ReportDir    string  `env:"REPORT_DIR" envDefault:"./reports"`
	RateLimitRPS float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateBurst    int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	for name, v := range map[string]string{
		"CHECK_IN_CUTOFF":  c.CheckInCutoff,
		"CHECK_OUT_CUTOFF": c.CheckOutCutoff,
	} {
		if _, err := time.Parse("15:04", v); err != nil {
			errs = append(errs, fmt.Errorf("%s must be HH:MM, got %q", name, v))
		}
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Weekend(); err != nil {
		errs = append(errs, err)
	}
	if p, err := c.Penalty(); err != nil {
		errs = append(errs, err)
	} else if p.IsNegative() {
		errs = append(errs, errors.New("PARTIAL_DAY_PENALTY must not be negative"))
	}
	if c.PayRatePerUnit < 0 {
		errs = append(errs, errors.New("PAY_RATE_PER_UNIT must not be negative"))
	}
	if c.PayrollWorkers < 1 {
		errs = append(errs, errors.New("PAYROLL_WORKERS must be at least 1"))
	}
	if c.RetrievalMaxAttempts < 1 {
		errs = append(errs, errors.New("RETRIEVAL_MAX_ATTEMPTS must be at least 1"))
	}

	return errors.Join(errs...)
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.WorkplaceTimezone)
	if err != nil {
		return nil, fmt.Errorf("WORKPLACE_TIMEZONE %q: %w", c.WorkplaceTimezone, err)
	}
	return loc, nil
}

var weekdays = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

func (c Config) Weekend() ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(c.WeekendDays))
	for _, raw := range c.WeekendDays {
		name := strings.ToUpper(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		d, ok := weekdays[name]
		if !ok {
			return nil, fmt.Errorf("WEEKEND_DAYS: unknown weekday %q", raw)
		}
		out = append(out, d)
	}
	return out, nil
}

func (c Config) Penalty() (decimal.Decimal, error) {
	p, err := decimal.NewFromString(c.PartialDayPenalty)
	if err != nil {
		return decimal.Zero, fmt.Errorf("PARTIAL_DAY_PENALTY %q: %w", c.PartialDayPenalty, err)
	}
	return p, nil
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
