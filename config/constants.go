package config

import "time"

// Agent Constants
const (
	// DefaultAgentName identifies the orchestrating agent in run items and logs
	DefaultAgentName = "Content Creator Agent"

	// DefaultAgentModel drives the orchestrating agent
	DefaultAgentModel = "gpt-4o-mini"

	// DefaultMaxTurns bounds the model round trips of a single agent run
	DefaultMaxTurns = 10
)

// Post Tool Constants
const (
	// DefaultPostModel writes individual platform posts
	DefaultPostModel = "gpt-4o"

	// PostMaxTokens is the output ceiling for a single written post
	PostMaxTokens = 2500
)

// Transcript Constants
const (
	// DefaultTranscriptLanguage is used when no preferred languages are given
	DefaultTranscriptLanguage = "en"

	// TranscriptCacheTTL is how long fetched snippets stay in Redis
	TranscriptCacheTTL = 6 * time.Hour

	// TranscriptCachePrefix namespaces transcript keys in Redis
	TranscriptCachePrefix = "transcript:"
)

// Search Constants
const (
	// SearchResultLimit caps results handed back to the agent
	SearchResultLimit = 5

	// SearchMaxPerDomain limits results from a single site
	SearchMaxPerDomain = 2

	// SearchExtractWorkers is the readability worker pool size
	SearchExtractWorkers = 3

	// SearchExtractTimeout bounds a single page extraction
	SearchExtractTimeout = 15 * time.Second

	// SearchExcerptLength truncates extracted page text
	SearchExcerptLength = 600
)

// Output Constants
const (
	// PostMIMEType is served with every downloaded post
	PostMIMEType = "text/plain"

	// PostFileSuffix is appended to the lowercased platform name
	PostFileSuffix = "_post.txt"

	// UnknownPlatform labels posts that carry no platform
	UnknownPlatform = "Unknown"
)

// HTTP Constants
const (
	// DefaultPort is used when PORT is not set
	DefaultPort = "8080"

	// DefaultHTTPTimeout bounds LLM and scraping requests
	DefaultHTTPTimeout = 120 * time.Second
)

// Kafka Constants
const (
	DefaultKafkaBrokers   = "localhost:9093"
	DefaultRequestTopic   = "post-generation-requests"
	DefaultResultTopic    = "post-generation-results"
	DefaultConsumerGroup  = "postcraft-worker-group"
	ShutdownDrainInterval = 2 * time.Second

	// JobSeenTTL is how long a processed job id is remembered
	JobSeenTTL = 24 * time.Hour

	// JobSeenPrefix namespaces processed job ids in Redis
	JobSeenPrefix = "job:seen:"
)
