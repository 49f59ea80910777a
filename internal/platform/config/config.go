package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	PostgresDSN string

	MinDiscoveryResults int
	ScoringWeightsPath  string

	QueueSize int
	Workers   int

	Apollo     ApolloConfig
	Salesforce SalesforceConfig
}

// ApolloConfig carries the people-search vendor settings. All values are
// explicit; the client itself never reads the environment.
type ApolloConfig struct {
	Enabled           bool
	APIKey            string
	BaseURL           string
	PerPage           int
	ResultLimit       int
	MaxRetries        int
	RetryDelay        time.Duration
	Timeout           time.Duration
	RequestsPerSecond float64
}

type SalesforceConfig struct {
	ClientID string
}

func Load() (Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "prospector"
	}

	return Config{
		ServiceName: service,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		MinDiscoveryResults: envInt("DISCOVERY_MIN_RESULTS", 10),
		ScoringWeightsPath:  os.Getenv("SCORING_WEIGHTS_PATH"),

		QueueSize: envInt("TASK_QUEUE_SIZE", 256),
		Workers:   envInt("TASK_WORKERS", 4),

		Apollo: ApolloConfig{
			Enabled:           envBool("APOLLO_ENABLED", false),
			APIKey:            os.Getenv("APOLLO_API_KEY"),
			BaseURL:           os.Getenv("APOLLO_BASE_URL"),
			PerPage:           envInt("APOLLO_PER_PAGE", 25),
			ResultLimit:       envInt("APOLLO_RESULT_LIMIT", 25),
			MaxRetries:        envInt("APOLLO_MAX_RETRIES", 2),
			RetryDelay:        envDuration("APOLLO_RETRY_DELAY", 250*time.Millisecond),
			Timeout:           envDuration("APOLLO_TIMEOUT", 10*time.Second),
			RequestsPerSecond: envFloat("APOLLO_REQUESTS_PER_SECOND", 2),
		},
		Salesforce: SalesforceConfig{
			ClientID: os.Getenv("SALESFORCE_CLIENT_ID"),
		},
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envFloat(name string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
