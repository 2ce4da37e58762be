package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type LedgerConfig struct {
	ReportCacheTTL    time.Duration
	ReportCacheKey    string
	ReceiptQRSize     int
	AlertOnUnverified bool
	MaxAmount         decimal.Decimal
	ReceiptPrefix     string
}

func LoadLedgerConfig() *LedgerConfig {
	return &LedgerConfig{
		ReportCacheTTL:    getEnvAsDuration("LEDGER_REPORT_CACHE_TTL", 5*time.Minute),
		ReportCacheKey:    getEnv("LEDGER_REPORT_CACHE_KEY", "ledger:fraud-report"),
		ReceiptQRSize:     getEnvAsInt("LEDGER_RECEIPT_QR_SIZE", 256),
		AlertOnUnverified: getEnvAsBool("LEDGER_ALERT_ON_UNVERIFIED", true),
		MaxAmount:         getEnvAsDecimal("LEDGER_MAX_AMOUNT", decimal.NewFromInt(10_000_000)),
		ReceiptPrefix:     getEnv("LEDGER_RECEIPT_PREFIX", "loan"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}

func getEnvAsDecimal(key string, defaultVal decimal.Decimal) decimal.Decimal {
	if val := os.Getenv(key); val != "" {
		if d, err := decimal.NewFromString(val); err == nil {
			return d
		}
	}
	return defaultVal
}
