package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10, cfg.Analytics.DefaultTopN)
	assert.InDelta(t, 10, cfg.Analytics.GrowingMin, 0.001)
	assert.InDelta(t, -10, cfg.Analytics.DecliningMax, 0.001)
	assert.Equal(t, "ebay.com", cfg.Ingest.MarketplaceDomain)
	assert.Equal(t, int64(10<<20), cfg.Ingest.MaxBodyBytes)

	require.NoError(t, cfg.validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "zero read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
		{
			name:    "non-positive top n",
			mutate:  func(c *Config) { c.Analytics.DefaultTopN = 0 },
			wantErr: "top n",
		},
		{
			name: "inverted thresholds",
			mutate: func(c *Config) {
				c.Analytics.GrowingMin = -5
				c.Analytics.DecliningMax = 5
			},
			wantErr: "growing_min",
		},
		{
			name: "equal thresholds",
			mutate: func(c *Config) {
				c.Analytics.GrowingMin = 0
				c.Analytics.DecliningMax = 0
			},
			wantErr: "growing_min",
		},
		{
			name:    "zero body cap",
			mutate:  func(c *Config) { c.Ingest.MaxBodyBytes = 0 },
			wantErr: "max body bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_NormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "syslog"
	cfg.Logging.Format = "xml"

	require.NoError(t, cfg.validate())
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestMergeConfigs_EnvTakesPrecedence(t *testing.T) {
	fileCfg := *Default()
	fileCfg.Server.Port = 9999
	fileCfg.Analytics.DefaultTopN = 25

	var envCfg Config
	envCfg.Server.Port = 3000

	merged := mergeConfigs(fileCfg, envCfg)
	assert.Equal(t, 3000, merged.Server.Port)
	assert.Equal(t, 25, merged.Analytics.DefaultTopN)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SALESPULSE_SERVER_PORT", "9090")
	t.Setenv("SALESPULSE_ANALYTICS_DEFAULT_TOP_N", "5")
	t.Setenv("SALESPULSE_INGEST_MARKETPLACE_DOMAIN", "etsy.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Analytics.DefaultTopN)
	assert.Equal(t, "etsy.com", cfg.Ingest.MarketplaceDomain)
}
