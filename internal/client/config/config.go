// Package config handles configuration for the CLI client, applying
// defaults, a JSON file overlay, environment variables, and command-line
// flags, in that order.
package config

import "time"

// Config holds runtime settings for the dispatch CLI.
//
// Fields:
//   - EntryPointURL: base URL of the dispatch REST API.
//   - Token: externally supplied bearer token. Prompted for when empty and no
//     client-credentials settings are present.
//   - TokenURL/ClientID/ClientSecret: OAuth2 client-credentials flow; when
//     TokenURL is set it takes precedence over the static token.
//   - SenderOrganizationID: organization used to prefill the sender block of
//     new drafts; empty disables the enrichment.
//   - RequestTimeout: upper bound for one REST call.
//   - OnlineCheckInterval: how often the client probes API reachability.
//   - Optimistic: trust mutation responses instead of refetching.
type Config struct {
	EntryPointURL        string
	Token                string
	TokenURL             string
	ClientID             string
	ClientSecret         string
	SenderOrganizationID string
	RequestTimeout       time.Duration
	OnlineCheckInterval  time.Duration
	Optimistic           bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.EntryPointURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
