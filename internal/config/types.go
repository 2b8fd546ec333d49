package config

// StoreType selects the key-value backend for session state.
type StoreType string

const (
	StoreSQLite StoreType = "sqlite"
	StoreRedis  StoreType = "redis"
	StoreMemory StoreType = "memory"
)

// Config is the top-level csslab configuration, corresponding to .csslab.yml.
type Config struct {
	Port            int       `yaml:"port" koanf:"port"`
	DataDir         string    `yaml:"data_dir" koanf:"data_dir"`
	Store           StoreType `yaml:"store" koanf:"store"`
	RedisURL        string    `yaml:"redis_url,omitempty" koanf:"redis_url"`
	AllowAllOrigins bool      `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	LogLevel        string    `yaml:"log_level" koanf:"log_level"`
}
