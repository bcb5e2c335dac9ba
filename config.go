package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"postcraft/config"
)

// errMissingAPIKey is returned before any generation when no key is set
var errMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

// Config is read from the environment once at startup and passed down
type Config struct {
	OpenAIKey       string
	OpenAIBaseURL   string
	AgentModel      string
	PostModel       string
	AgentConfigPath string
	HTTPTimeout     time.Duration

	Port      string
	OutputDir string

	SearxngURL     string
	SearchLanguage string
	CohereKey      string

	RedisAddr          string
	RedisPass          string
	TranscriptCacheTTL time.Duration

	YouTubeAPIKey         string
	YouTubeServiceAccount string

	KafkaBrokers []string
	RequestTopic string
	ResultTopic  string
	GroupID      string
}

// LoadConfig reads Config from the environment
func LoadConfig() (Config, error) {
	httpTimeout, err := getDurationOrDefault("HTTP_TIMEOUT", config.DefaultHTTPTimeout)
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := getDurationOrDefault("TRANSCRIPT_CACHE_TTL", config.TranscriptCacheTTL)
	if err != nil {
		return Config{}, err
	}

	return Config{
		OpenAIKey:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:   strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		AgentModel:      strings.TrimSpace(os.Getenv("AGENT_MODEL")),
		PostModel:       strings.TrimSpace(os.Getenv("POST_MODEL")),
		AgentConfigPath: strings.TrimSpace(os.Getenv("AGENT_CONFIG")),
		HTTPTimeout:     httpTimeout,

		Port:      getEnvOrDefault("PORT", config.DefaultPort),
		OutputDir: getEnvOrDefault("OUTPUT_DIR", "."),

		SearxngURL:     strings.TrimSpace(os.Getenv("SEARXNG_URL")),
		SearchLanguage: getEnvOrDefault("SEARCH_LANGUAGE", config.DefaultTranscriptLanguage),
		CohereKey:      strings.TrimSpace(os.Getenv("COHERE_API_KEY")),

		RedisAddr:          strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPass:          os.Getenv("REDIS_PASS"),
		TranscriptCacheTTL: cacheTTL,

		YouTubeAPIKey:         strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY")),
		YouTubeServiceAccount: strings.TrimSpace(os.Getenv("YOUTUBE_SERVICE_ACCOUNT")),

		KafkaBrokers: splitCSV(getEnvOrDefault("KAFKA_BOOTSTRAP_SERVERS", config.DefaultKafkaBrokers)),
		RequestTopic: getEnvOrDefault("KAFKA_TOPIC_GENERATION_REQUESTS", config.DefaultRequestTopic),
		ResultTopic:  getEnvOrDefault("KAFKA_TOPIC_GENERATION_RESULTS", config.DefaultResultTopic),
		GroupID:      getEnvOrDefault("KAFKA_CONSUMER_GROUP_ID", config.DefaultConsumerGroup),
	}, nil
}

// requireOpenAI fails fast when generation is impossible
func (c Config) requireOpenAI() error {
	if c.OpenAIKey == "" {
		return errMissingAPIKey
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
