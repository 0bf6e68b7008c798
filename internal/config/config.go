package config

// Config is the server-level configuration, read from the environment
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string
}

// Load reads server configuration with local-development defaults
func Load() *Config {
	return &Config{
		MongoURI:  getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnvOrDefault("MONGO_DB", "venturescope"),
		RedisAddr: getEnvOrDefault("REDIS_URI", "localhost:6379"),
		HTTPPort:  getEnvOrDefault("PORT", "8080"),
	}
}
