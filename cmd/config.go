package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"rental/internal/adapters/out/viacep"
	"rental/internal/jobs"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort         = "8080"
	defaultDBPort           = "5432"
	defaultDBSslMode        = "disable"
	defaultLogLevel         = "info"
	defaultAppEnv           = "production"
	defaultShutdownTimeout  = 10 * time.Second
	defaultAddressLookupURL = viacep.DefaultBaseURL
)

type Config struct {
	HTTPPort        string
	ShutdownTimeout time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AddressLookupURL     string
	AddressLookupTimeout time.Duration

	JWTSecret string

	LogLevel string
	AppEnv   string

	OverdueJobSchedule          string
	EligibilityLegacyClientRule bool
}

type envLookup func(string) (string, bool)

// LoadConfig reads envFile when it exists and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return loadConfig(os.LookupEnv)
}

func loadConfig(lookup envLookup) (Config, error) {
	var parseErrs []error

	cfg := Config{
		HTTPPort:        getString(lookup, "HTTP_PORT", defaultHTTPPort),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout, &parseErrs),

		DBHost:     getString(lookup, "DB_HOST", ""),
		DBPort:     getString(lookup, "DB_PORT", defaultDBPort),
		DBUser:     getString(lookup, "DB_USER", ""),
		DBPassword: getString(lookup, "DB_PASSWORD", ""),
		DBName:     getString(lookup, "DB_NAME", ""),
		DBSslMode:  getString(lookup, "DB_SSLMODE", defaultDBSslMode),

		AddressLookupURL:     getString(lookup, "ADDRESS_LOOKUP_URL", defaultAddressLookupURL),
		AddressLookupTimeout: getDuration(lookup, "ADDRESS_LOOKUP_TIMEOUT", viacep.DefaultTimeout, &parseErrs),

		JWTSecret: getString(lookup, "JWT_SECRET", ""),

		LogLevel: getString(lookup, "LOG_LEVEL", defaultLogLevel),
		AppEnv:   getString(lookup, "APP_ENV", defaultAppEnv),

		OverdueJobSchedule:          getString(lookup, "OVERDUE_JOB_SCHEDULE", jobs.DefaultOverdueSchedule),
		EligibilityLegacyClientRule: getBool(lookup, "ELIGIBILITY_LEGACY_CLIENT_RULE", false, &parseErrs),
	}

	if err := errors.Join(append(parseErrs, cfg.validate())...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []error
	for key, value := range map[string]string{
		"DB_HOST":    c.DBHost,
		"DB_USER":    c.DBUser,
		"DB_NAME":    c.DBName,
		"JWT_SECRET": c.JWTSecret,
	} {
		if value == "" {
			problems = append(problems, fmt.Errorf("%s must be set", key))
		}
	}

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		problems = append(problems, fmt.Errorf("HTTP_PORT %q is not a valid port", c.HTTPPort))
	}
	if c.AddressLookupTimeout <= 0 {
		problems = append(problems, errors.New("ADDRESS_LOOKUP_TIMEOUT must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}

	return errors.Join(problems...)
}

// DSN is the libpq connection string shared by gorm and the migrator.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) ListenAddress() string {
	return "0.0.0.0:" + c.HTTPPort
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration, errs *[]error) time.Duration {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func getBool(lookup envLookup, key string, def bool, errs *[]error) bool {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}
