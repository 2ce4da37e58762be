package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadLedgerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadLedgerConfig()
		assert.Equal(t, 5*time.Minute, cfg.ReportCacheTTL)
		assert.Equal(t, "ledger:fraud-report", cfg.ReportCacheKey)
		assert.Equal(t, 256, cfg.ReceiptQRSize)
		assert.True(t, cfg.AlertOnUnverified)
		assert.True(t, decimal.NewFromInt(10_000_000).Equal(cfg.MaxAmount))
		assert.Equal(t, "loan", cfg.ReceiptPrefix)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("LEDGER_REPORT_CACHE_TTL", "30s")
		t.Setenv("LEDGER_RECEIPT_QR_SIZE", "512")
		t.Setenv("LEDGER_ALERT_ON_UNVERIFIED", "false")
		t.Setenv("LEDGER_MAX_AMOUNT", "2500.50")

		cfg := LoadLedgerConfig()
		assert.Equal(t, 30*time.Second, cfg.ReportCacheTTL)
		assert.Equal(t, 512, cfg.ReceiptQRSize)
		assert.False(t, cfg.AlertOnUnverified)
		assert.Equal(t, "2500.5", cfg.MaxAmount.String())
	})

	t.Run("malformed values fall back", func(t *testing.T) {
		t.Setenv("LEDGER_REPORT_CACHE_TTL", "soon")
		t.Setenv("LEDGER_RECEIPT_QR_SIZE", "big")
		t.Setenv("LEDGER_ALERT_ON_UNVERIFIED", "maybe")
		t.Setenv("LEDGER_MAX_AMOUNT", "lots")

		cfg := LoadLedgerConfig()
		assert.Equal(t, 5*time.Minute, cfg.ReportCacheTTL)
		assert.Equal(t, 256, cfg.ReceiptQRSize)
		assert.True(t, cfg.AlertOnUnverified)
		assert.True(t, decimal.NewFromInt(10_000_000).Equal(cfg.MaxAmount))
	})
}
