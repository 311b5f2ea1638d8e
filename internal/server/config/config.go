// Package config handles configuration for the server component, including
// defaults, a YAML overlay and command-line flags.
package config

import "time"

// Config holds runtime settings for the dispatch server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx), or "memory" for the in-process store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: bearer token lifetime for minted dev tokens.
//   - StorageDir: directory for blob storage when no S3 endpoint is set.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - Organizations: sender organizations served by the base API.
type Config struct {
	EndpointAddr          string         `yaml:"endpoint_addr"`
	DatabaseDSN           string         `yaml:"database_dsn"`
	SecretKey             string         `yaml:"secret_key"`
	TokenValidityDuration time.Duration  `yaml:"token_validity_duration"`
	StorageDir            string         `yaml:"storage_dir"`
	S3RootUser            string         `yaml:"s3_root_user"`
	S3RootPassword        string         `yaml:"s3_root_password"`
	S3Bucket              string         `yaml:"s3_bucket"`
	S3Region              string         `yaml:"s3_region"`
	S3BaseEndpoint        string         `yaml:"s3_base_endpoint"`
	Organizations         []Organization `yaml:"organizations"`

	// MintTokenFor, when set via flags, makes the server print a dev token
	// for the given owner and exit.
	MintTokenFor string `yaml:"-"`
}

// Organization is a sender organization entry served by the base API.
type Organization struct {
	Identifier      string `yaml:"identifier"`
	Name            string `yaml:"name"`
	AddressCountry  string `yaml:"address_country"`
	PostalCode      string `yaml:"postal_code"`
	AddressLocality string `yaml:"address_locality"`
	StreetAddress   string `yaml:"street_address"`
	BuildingNumber  string `yaml:"building_number"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = "memory"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.StorageDir = "./data"
	c.S3Bucket = "dispatch"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional YAML file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseYaml(cfg)
	parseFlags(cfg)
	return cfg
}
