package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/paperdispatch/paperdispatch/internal/flagx"
)

// parseYaml overlays cfg with values loaded from the YAML file given via the
// -c/-config flags. Environment references ($VAR, ${VAR}) in the file are
// expanded before unmarshalling, so secrets can stay out of the file itself.
// No file, no overlay. Read or unmarshal errors panic; a broken config file
// should stop the program immediately.
func parseYaml(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		panic(err)
	}
}
