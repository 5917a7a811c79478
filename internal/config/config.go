package config

import (
	"os"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort      string
	LogLevel        string
	JWTSecret       string
	SupabaseURL     string
	SupabaseKey     string
	VertexProjectID string
	VertexLocation  string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:      getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", ""),
		SupabaseURL:     getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:     getEnvOrDefault("SUPABASE_SERVICE_KEY", ""),
		VertexProjectID: getEnvOrDefault("VERTEX_PROJECT_ID", ""),
		VertexLocation:  getEnvOrDefault("VERTEX_LOCATION", "us-central1"),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetJWTSecret returns the session signing secret
func (c *AppConfig) GetJWTSecret() string {
	return c.JWTSecret
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase service key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetVertexProjectID returns the Vertex AI project ID
func (c *AppConfig) GetVertexProjectID() string {
	return c.VertexProjectID
}

// GetVertexLocation returns the Vertex AI location
func (c *AppConfig) GetVertexLocation() string {
	return c.VertexLocation
}

// Helper function for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
