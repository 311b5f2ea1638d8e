package config

import (
	"os"
	"time"
)

// parseEnv overlays cfg with DISPATCH_* environment variables. The token in
// particular usually arrives this way, supplied by whatever obtained it.
func parseEnv(cfg *Config) {
	if v := os.Getenv("DISPATCH_ENTRYPOINT_URL"); v != "" {
		cfg.EntryPointURL = v
	}
	if v := os.Getenv("DISPATCH_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("DISPATCH_TOKEN_URL"); v != "" {
		cfg.TokenURL = v
	}
	if v := os.Getenv("DISPATCH_CLIENT_ID"); v != "" {
		cfg.ClientID = v
	}
	if v := os.Getenv("DISPATCH_CLIENT_SECRET"); v != "" {
		cfg.ClientSecret = v
	}
	if v := os.Getenv("DISPATCH_SENDER_ORGANIZATION_ID"); v != "" {
		cfg.SenderOrganizationID = v
	}
	if v := os.Getenv("DISPATCH_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
