package config

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = ".csslab.yml"

// DatabaseFile is the SQLite file name inside DataDir.
const DatabaseFile = "csslab.db"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:     8080,
		DataDir:  ".csslab",
		Store:    StoreSQLite,
		LogLevel: "info",
	}
}
