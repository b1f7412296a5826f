package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	// Where domain events go: "redis" publishes to channels, "log"
	// writes them to the process log.
	EventsSink string

	IdempTTLSecs int

	// Platform admin account, 32-char lowercase hex.
	AdminID string

	DefaultCurrency string

	MinBidAmount       int64
	BidExpirationHours int
	GracePeriodDays    int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getint64(k string, d int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "quickfactor"),
		MySQLUser: getenv("MYSQL_USER", "quickfactor"),
		MySQLPass: getenv("MYSQL_PASS", "quickfactor"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getint("REDIS_DB", 0),

		EventsSink: getenv("EVENTS_SINK", "redis"),

		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		AdminID: getenv("ADMIN_ID", ""),

		DefaultCurrency: getenv("DEFAULT_CURRENCY", "USD"),

		MinBidAmount:       getint64("MIN_BID_AMOUNT", 100),
		BidExpirationHours: getint("BID_EXPIRATION_HOURS", 24),
		GracePeriodDays:    getint("GRACE_PERIOD_DAYS", 14),
	}
}

func isHex32(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.EventsSink != "redis" && c.EventsSink != "log" {
		return fmt.Errorf("EVENTS_SINK must be redis or log, got %q", c.EventsSink)
	}
	if c.AdminID == "" || !isHex32(c.AdminID) {
		return errors.New("ADMIN_ID must be 32-char lowercase hex")
	}
	if c.MinBidAmount <= 0 {
		return errors.New("MIN_BID_AMOUNT must be positive")
	}
	if c.BidExpirationHours <= 0 {
		return errors.New("BID_EXPIRATION_HOURS must be positive")
	}
	if c.GracePeriodDays <= 0 {
		return errors.New("GRACE_PERIOD_DAYS must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME columns
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
