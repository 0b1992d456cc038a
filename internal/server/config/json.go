package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mindwell/internal/flagx"
	"github.com/dmitrijs2005/mindwell/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file. Durations
// accept strings such as "168h" or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC        string         `json:"endpoint_addr_grpc"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	Environment             string         `json:"environment"`
	AllowedOrigins          []string       `json:"allowed_origins"`
	LogBackend              string         `json:"log_backend"`
	BcryptCost              int            `json:"bcrypt_cost"`
	ProtectSentimentAppend  *bool          `json:"protect_sentiment_append"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
}

// parseJson overlays values from the JSON file named by -c / -config. Keys
// missing from the file leave the current value untouched. A file that cannot
// be read or parsed panics, as the server cannot start with a broken config.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Environment, c.Environment)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.SessionValidityDuration.Duration > 0 {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.ProtectSentimentAppend != nil {
		config.ProtectSentimentAppend = *c.ProtectSentimentAppend
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
