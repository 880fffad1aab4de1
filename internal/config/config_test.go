package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"curve-launchpad/internal/curve"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	authority := solana.NewWallet().PublicKey().String()
	recipient := solana.NewWallet().PublicKey().String()

	path := writeConfig(t, `{
		"authority": "`+authority+`",
		"fee_recipient": "`+recipient+`",
		"platform_fee_bps": 250,
		"postgres_url": "postgres://localhost/launchpad",
		"metrics_addr": ":9999",
		"debug_logging": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, authority, cfg.Authority)
	require.Equal(t, recipient, cfg.FeeRecipient)
	require.Equal(t, uint16(250), cfg.PlatformFeeBps)
	require.Equal(t, "postgres://localhost/launchpad", cfg.PostgresURL)
	require.Equal(t, ":9999", cfg.MetricsAddr)
	require.True(t, cfg.DebugLogging)
}

func TestLoadConfigDefaults(t *testing.T) {
	authority := solana.NewWallet().PublicKey().String()
	recipient := solana.NewWallet().PublicKey().String()

	path := writeConfig(t, `{
		"authority": "`+authority+`",
		"fee_recipient": "`+recipient+`"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, uint16(curve.DefaultPlatformFeeBps), cfg.PlatformFeeBps)
	require.Equal(t, DefaultMetricsAddr, cfg.MetricsAddr)
	require.Equal(t, DefaultEventBuffer, cfg.EventBuffer)
	require.Equal(t, DefaultLogFile, cfg.LogFile)
}

func TestLoadConfigValidation(t *testing.T) {
	authority := solana.NewWallet().PublicKey().String()
	recipient := solana.NewWallet().PublicKey().String()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing authority",
			content: `{"fee_recipient": "` + recipient + `"}`,
		},
		{
			name:    "invalid authority",
			content: `{"authority": "not-base58!", "fee_recipient": "` + recipient + `"}`,
		},
		{
			name:    "missing fee recipient",
			content: `{"authority": "` + authority + `"}`,
		},
		{
			name:    "invalid fee recipient",
			content: `{"authority": "` + authority + `", "fee_recipient": "bogus"}`,
		},
		{
			name:    "fee above cap",
			content: `{"authority": "` + authority + `", "fee_recipient": "` + recipient + `", "platform_fee_bps": 1001}`,
		},
		{
			name:    "zero event buffer",
			content: `{"authority": "` + authority + `", "fee_recipient": "` + recipient + `", "event_buffer": 0}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadConfig(path)
			require.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
