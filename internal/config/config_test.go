package config

import (
	"strings"
	"testing"
)

const adminHex = "0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	return &Config{
		AppPort:            "8080",
		MySQLHost:          "mysql",
		MySQLPort:          "3306",
		MySQLDB:            "quickfactor",
		MySQLUser:          "quickfactor",
		MySQLPass:          "quickfactor",
		EventsSink:         "redis",
		AdminID:            adminHex,
		DefaultCurrency:    "USD",
		MinBidAmount:       100,
		BidExpirationHours: 24,
		GracePeriodDays:    14,
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"APP_PORT", "MYSQL_HOST", "MYSQL_PORT", "MYSQL_DB", "MYSQL_USER", "MYSQL_PASS",
		"REDIS_ADDR", "REDIS_DB", "EVENTS_SINK", "IDEMPOTENCY_TTL_SECONDS", "ADMIN_ID",
		"DEFAULT_CURRENCY", "MIN_BID_AMOUNT", "BID_EXPIRATION_HOURS", "GRACE_PERIOD_DAYS",
	} {
		t.Setenv(k, "")
	}

	c := Load()
	if c.AppPort != "8080" {
		t.Errorf("AppPort default: got %q", c.AppPort)
	}
	if c.RedisAddr != "redis:6379" || c.RedisDB != 0 {
		t.Errorf("redis defaults: got %q db=%d", c.RedisAddr, c.RedisDB)
	}
	if c.EventsSink != "redis" {
		t.Errorf("EventsSink default: got %q", c.EventsSink)
	}
	if c.IdempTTLSecs != 300 {
		t.Errorf("IdempTTLSecs default: got %d", c.IdempTTLSecs)
	}
	if c.DefaultCurrency != "USD" {
		t.Errorf("DefaultCurrency default: got %q", c.DefaultCurrency)
	}
	if c.MinBidAmount != 100 || c.BidExpirationHours != 24 || c.GracePeriodDays != 14 {
		t.Errorf("marketplace defaults: min=%d exp=%d grace=%d",
			c.MinBidAmount, c.BidExpirationHours, c.GracePeriodDays)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MIN_BID_AMOUNT", "2500")
	t.Setenv("GRACE_PERIOD_DAYS", "7")
	t.Setenv("EVENTS_SINK", "log")
	t.Setenv("ADMIN_ID", adminHex)

	c := Load()
	if c.AppPort != "9090" {
		t.Errorf("AppPort override: got %q", c.AppPort)
	}
	if c.MinBidAmount != 2500 {
		t.Errorf("MinBidAmount override: got %d", c.MinBidAmount)
	}
	if c.GracePeriodDays != 7 {
		t.Errorf("GracePeriodDays override: got %d", c.GracePeriodDays)
	}
	if c.EventsSink != "log" {
		t.Errorf("EventsSink override: got %q", c.EventsSink)
	}
	if c.AdminID != adminHex {
		t.Errorf("AdminID override: got %q", c.AdminID)
	}
}

func TestLoad_BadIntFallsBackToDefault(t *testing.T) {
	t.Setenv("BID_EXPIRATION_HOURS", "soon")
	t.Setenv("MIN_BID_AMOUNT", "10.5")

	c := Load()
	if c.BidExpirationHours != 24 {
		t.Errorf("expected fallback 24, got %d", c.BidExpirationHours)
	}
	if c.MinBidAmount != 100 {
		t.Errorf("expected fallback 100, got %d", c.MinBidAmount)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"missing mysql host", func(c *Config) { c.MySQLHost = "" }, "missing MySQL config"},
		{"missing mysql user", func(c *Config) { c.MySQLUser = "" }, "missing MySQL config"},
		{"bad mysql port", func(c *Config) { c.MySQLPort = "notaport" }, "invalid MYSQL_PORT"},
		{"missing app port", func(c *Config) { c.AppPort = "" }, "missing APP_PORT"},
		{"unknown events sink", func(c *Config) { c.EventsSink = "kafka" }, "EVENTS_SINK"},
		{"empty admin id", func(c *Config) { c.AdminID = "" }, "ADMIN_ID"},
		{"uppercase admin id", func(c *Config) { c.AdminID = strings.ToUpper(adminHex) }, "ADMIN_ID"},
		{"short admin id", func(c *Config) { c.AdminID = "abc123" }, "ADMIN_ID"},
		{"zero min bid", func(c *Config) { c.MinBidAmount = 0 }, "MIN_BID_AMOUNT"},
		{"negative expiration", func(c *Config) { c.BidExpirationHours = -1 }, "BID_EXPIRATION_HOURS"},
		{"zero grace period", func(c *Config) { c.GracePeriodDays = 0 }, "GRACE_PERIOD_DAYS"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	c := validConfig()
	dsn := c.MySQLDSN()
	if !strings.HasPrefix(dsn, "quickfactor:quickfactor@tcp(mysql:3306)/quickfactor?") {
		t.Errorf("unexpected DSN prefix: %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("DSN missing parseTime: %q", dsn)
	}
}
