package config

// SupportedVersion is the only config file schema version understood.
const SupportedVersion = "1"

// Configfile represents the structure of the .opamlock.yaml configuration file.
// Pointer fields distinguish an absent key from its zero value.
type Configfile struct {
	Version  string  `yaml:"version"`
	Opam     *string `yaml:"opam"`
	Lockfile *string `yaml:"lockfile"`
	Verbose  *bool   `yaml:"verbose"`
	Debug    *bool   `yaml:"debug"`
	JSONLogs *bool   `yaml:"json_logs"`
}
