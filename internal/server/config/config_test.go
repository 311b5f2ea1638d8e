package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8080", cfg.EndpointAddr)
	require.Equal(t, "memory", cfg.DatabaseDSN)
	require.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
}

func TestYamlOverlay(t *testing.T) {
	data := []byte(`
endpoint_addr: ":9090"
database_dsn: "postgres://u:p@localhost:5432/dispatch"
secret_key: "prod-secret"
organizations:
  - identifier: "org-1"
    name: "ACME GmbH"
    address_country: "DE"
    postal_code: "10115"
    address_locality: "Berlin"
    street_address: "Invalidenstr."
`)

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, yaml.Unmarshal(data, cfg))

	require.Equal(t, ":9090", cfg.EndpointAddr)
	require.Equal(t, "postgres://u:p@localhost:5432/dispatch", cfg.DatabaseDSN)
	require.Equal(t, "prod-secret", cfg.SecretKey)
	require.Len(t, cfg.Organizations, 1)
	require.Equal(t, "ACME GmbH", cfg.Organizations[0].Name)
	// Unset keys keep their defaults.
	require.Equal(t, "./data", cfg.StorageDir)
}
