package cli

import "os"

// Config holds CLI configuration
type Config struct {
	ServerURL string
	APIKey    string
	Output    string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("URIT_SERVER", "http://localhost:8080"),
		APIKey:    os.Getenv("URIT_API_KEY"),
		Output:    "text",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
