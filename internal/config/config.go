package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Firestore FirestoreConfig
	Kafka     KafkaConfig
	LogLevel  string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// FirestoreConfig holds document database configuration. The service
// account key may be supplied inline (deployment secret) or as a
// file path; ambient credentials need neither.
type FirestoreConfig struct {
	ProjectID          string
	DatabaseID         string
	Collection         string
	ServiceAccountJSON string
	ServiceAccountFile string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Firestore: FirestoreConfig{
			ProjectID:          getEnv("GCP_PROJECT_ID", ""),
			DatabaseID:         getEnv("FIRESTORE_DATABASE", "fun-dead-trader"),
			Collection:         getEnv("FIRESTORE_COLLECTION", "journal_entries"),
			ServiceAccountJSON: getEnv("GCP_SERVICE_ACCOUNT", ""),
			ServiceAccountFile: getEnv("GCP_SERVICE_ACCOUNT_FILE", ""),
		},
		Kafka: KafkaConfig{
			Enabled: getEnv("KAFKA_ENABLED", "false") == "true",
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "journal-events"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// ServiceAccountKey returns the raw service account key material, if
// configured: inline JSON wins over a file path; neither yields nil.
func (f *FirestoreConfig) ServiceAccountKey() ([]byte, error) {
	if f.ServiceAccountJSON != "" {
		return []byte(f.ServiceAccountJSON), nil
	}
	if f.ServiceAccountFile != "" {
		data, err := os.ReadFile(f.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account file: %w", err)
		}
		return data, nil
	}
	return nil, nil
}

// Addr returns the server listen address
func (s *ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
