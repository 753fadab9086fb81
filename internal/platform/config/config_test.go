package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Ledger.EnforceGovernance)
	assert.Zero(t, cfg.Ledger.RentLamportsPerByteYear)
	assert.Equal(t, "bountyboard.audit", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, BoardCacheTTL, cfg.Redis.CacheTTL)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("REGISTRY_ADDR", ":9090")
	t.Setenv("REGISTRY_ENFORCE_GOVERNANCE", "false")
	t.Setenv("REGISTRY_RENT_LAMPORTS_PER_BYTE_YEAR", "3480")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("REDIS_BOARD_CACHE_TTL", "30s")
	t.Setenv("DATABASE_URL", "postgres://localhost/bountyboard")
	t.Setenv("REGISTRY_TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.1")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.False(t, cfg.Ledger.EnforceGovernance)
	assert.Equal(t, uint64(3480), cfg.Ledger.RentLamportsPerByteYear)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, "postgres://localhost/bountyboard", cfg.Database.URL)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, cfg.Server.TrustedProxies)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("REGISTRY_ENFORCE_GOVERNANCE", "sometimes")
	t.Setenv("REDIS_POOL_SIZE", "many")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_POOL_SIZE")
}

func TestFromEnvRejectsUnrunnableValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "rent price overflowing the largest record",
			env: map[string]string{
				"REGISTRY_RENT_LAMPORTS_PER_BYTE_YEAR": "18446744073709551615",
				"REGISTRY_RENT_EXEMPTION_YEARS":        "2",
			},
			want: "invalid ledger rent",
		},
		{
			name: "rent years overflowing the largest record",
			env: map[string]string{
				"REGISTRY_RENT_LAMPORTS_PER_BYTE_YEAR": "1099511627776",
				"REGISTRY_RENT_EXEMPTION_YEARS":        "1048576",
			},
			want: "invalid ledger rent",
		},
		{
			name: "trusted proxy that is not an address",
			env:  map[string]string{"REGISTRY_TRUSTED_PROXIES": "proxy.internal"},
			want: "invalid trusted proxies",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateAfterFlags(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	cfg.Ledger.RentLamportsPerByteYear = 1 << 62
	assert.Error(t, cfg.Validate())
}
