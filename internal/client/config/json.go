package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/paperdispatch/paperdispatch/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the corresponding Config value untouched.
type JsonConfig struct {
	EntryPointURL        string   `json:"entry_point_url"`
	Token                string   `json:"token"`
	TokenURL             string   `json:"token_url"`
	ClientID             string   `json:"client_id"`
	ClientSecret         string   `json:"client_secret"`
	SenderOrganizationID string   `json:"sender_organization_id"`
	RequestTimeout       Duration `json:"request_timeout"`
	OnlineCheckInterval  Duration `json:"online_check_interval"`
	Optimistic           *bool    `json:"optimistic"`
}

// parseJson overlays cfg with values loaded from the JSON file given via the
// -c/-config flags. No file, no overlay. Read or unmarshal errors panic;
// a broken config file should stop the program immediately.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EntryPointURL != "" {
		cfg.EntryPointURL = jc.EntryPointURL
	}
	if jc.Token != "" {
		cfg.Token = jc.Token
	}
	if jc.TokenURL != "" {
		cfg.TokenURL = jc.TokenURL
	}
	if jc.ClientID != "" {
		cfg.ClientID = jc.ClientID
	}
	if jc.ClientSecret != "" {
		cfg.ClientSecret = jc.ClientSecret
	}
	if jc.SenderOrganizationID != "" {
		cfg.SenderOrganizationID = jc.SenderOrganizationID
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.Optimistic != nil {
		cfg.Optimistic = *jc.Optimistic
	}
}
