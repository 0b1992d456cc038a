package config

import (
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// loadDotEnv loads variables from path into the process environment when the
// file exists. Variables that are already set win.
func loadDotEnv(path string) {
	_ = godotenv.Load(path)
}

// parseEnv overlays values from environment variables. lookup is
// os.LookupEnv in production.
//
// Recognized variables:
//
//	PORT                      HTTP port (becomes ":PORT")
//	HTTP_ADDR                 full HTTP bind address, wins over PORT
//	GRPC_ADDR                 gRPC health bind address
//	DATABASE_URL              PostgreSQL DSN
//	JWT_SECRET                token signing secret
//	NODE_ENV / APP_ENV        environment name, APP_ENV wins
//	CORS_ORIGINS              comma-separated allowed origins
//	LOG_BACKEND               slog | zap
//	PROTECT_SENTIMENT_APPEND  bool
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup("PORT"); ok && v != "" {
		cfg.EndpointAddrHTTP = ":" + v
	}
	if v, ok := lookup("HTTP_ADDR"); ok && v != "" {
		cfg.EndpointAddrHTTP = v
	}
	if v, ok := lookup("GRPC_ADDR"); ok && v != "" {
		cfg.EndpointAddrGRPC = v
	}
	if v, ok := lookup("DATABASE_URL"); ok && v != "" {
		cfg.DatabaseDSN = v
	}
	if v, ok := lookup("JWT_SECRET"); ok && v != "" {
		cfg.SecretKey = v
	}
	if v, ok := lookup("NODE_ENV"); ok && v != "" {
		cfg.Environment = v
	}
	if v, ok := lookup("APP_ENV"); ok && v != "" {
		cfg.Environment = v
	}
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("LOG_BACKEND"); ok && v != "" {
		cfg.LogBackend = v
	}
	if v, ok := lookup("PROTECT_SENTIMENT_APPEND"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ProtectSentimentAppend = b
		}
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
