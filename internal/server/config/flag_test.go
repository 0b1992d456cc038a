package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-m", ":9091", "-d", "db", "-s", "secret", "-t", "24",
				"-e", "production", "-o", "http://a.test,http://b.test", "-l", "zap", "-k", "12", "-P",
				"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-x", "http://endpoint",
			},
			expected: &Config{
				EndpointAddrHTTP:        "127.0.0.1:9090",
				EndpointAddrGRPC:        ":9091",
				DatabaseDSN:             "db",
				SecretKey:               "secret",
				SessionValidityDuration: 24 * time.Hour,
				Environment:             "production",
				AllowedOrigins:          []string{"http://a.test", "http://b.test"},
				LogBackend:              "zap",
				BcryptCost:              12,
				ProtectSentimentAppend:  true,
				S3RootUser:              "user",
				S3RootPassword:          "password",
				S3Bucket:                "bucket",
				S3Region:                "us-west-1",
				S3BaseEndpoint:          "http://endpoint",
			},
		},
		{
			name:        "bad int panics",
			args:        []string{"-k", "many"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_UnsetFlagsKeepValues(t *testing.T) {
	config := &Config{}
	config.LoadDefaults()
	config.SessionValidityDuration = 90 * time.Minute

	parseFlags(config, []string{"-c", "cfg.json", "-s", "k"})

	assert.Equal(t, "k", config.SecretKey)
	assert.Equal(t, 90*time.Minute, config.SessionValidityDuration)
	assert.Equal(t, []string{"http://localhost:5173"}, config.AllowedOrigins)
}

func TestParseFlags_BoolFollowedByWord(t *testing.T) {
	config := &Config{}
	config.LoadDefaults()

	parseFlags(config, []string{"-P", "true", "-d", "postgres://db", "-P=false", "-s", "k"})

	assert.False(t, config.ProtectSentimentAppend)
	assert.Equal(t, "postgres://db", config.DatabaseDSN)
	assert.Equal(t, "k", config.SecretKey)

	config = &Config{}
	config.LoadDefaults()
	parseFlags(config, []string{"-P", "true", "-d", "postgres://db"})

	assert.True(t, config.ProtectSentimentAppend)
	assert.Equal(t, "postgres://db", config.DatabaseDSN)
}
