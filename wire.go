package main

import (
	"context"
	"log"
	"net/http"

	"postcraft/agent"
	"postcraft/config"
	"postcraft/pipeline"
	"postcraft/search"
	"postcraft/transcript"
	"postcraft/video"
)

// buildPipeline assembles the generation pipeline from cfg. The returned
// cleanup releases any connections it opened.
func buildPipeline(ctx context.Context, cfg Config) (*pipeline.Pipeline, func(), error) {
	if err := cfg.requireOpenAI(); err != nil {
		return nil, nil, err
	}

	var closers []func() error
	cleanup := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var source transcript.Source = transcript.NewYouTubeSource(transcript.WithHTTPClient(httpClient))
	if cfg.RedisAddr != "" {
		cached, err := transcript.NewCachedSource(source, transcript.CacheConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			TTL:      cfg.TranscriptCacheTTL,
		})
		if err != nil {
			log.Printf("⚠️  Transcript cache disabled: %v", err)
		} else {
			log.Printf("✅ Transcript cache connected: %s", cfg.RedisAddr)
			source = cached
			closers = append(closers, cached.Close)
		}
	}

	profile, err := config.LoadAgentProfile(cfg.AgentConfigPath)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if cfg.AgentModel != "" {
		profile.Model = cfg.AgentModel
	}
	if cfg.PostModel != "" {
		profile.PostTool.Model = cfg.PostModel
	}

	client := agent.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, httpClient)

	tools := []agent.Tool{agent.NewPostTool(client, profile.PostTool.Model, profile.PostTool.MaxTokens)}
	if searcher := buildSearch(cfg); searcher != nil {
		tools = append(tools, agent.NewWebSearchTool(searcher))
	}

	var opts []pipeline.Option
	if meta := buildMetadata(ctx, cfg); meta != nil {
		opts = append(opts, pipeline.WithMetadata(meta))
	}

	p := pipeline.New(
		transcript.NewFetcher(source),
		agent.NewRunner(client),
		agent.FromProfile(profile, tools...),
		opts...,
	)
	return p, cleanup, nil
}

// buildSearch returns nil when no SearXNG endpoint is configured
func buildSearch(cfg Config) *search.Service {
	if cfg.SearxngURL == "" {
		return nil
	}

	svcCfg := search.ServiceConfig{
		Limit:        config.SearchResultLimit,
		MaxPerDomain: config.SearchMaxPerDomain,
		Extractor:    search.NewExtractor(config.SearchExtractWorkers, config.SearchExtractTimeout, config.SearchExcerptLength),
	}
	if provider := search.NewDefaultEmbeddingsProvider(cfg.CohereKey, cfg.OpenAIKey, cfg.OpenAIBaseURL); provider != nil {
		log.Printf("🔎 Web search re-rank with %s", provider.ModelName())
		svcCfg.Reranker = search.NewReranker(provider)
	}

	log.Printf("🔎 Web search enabled: %s", cfg.SearxngURL)
	return search.NewService(search.NewClient(cfg.SearxngURL, cfg.SearchLanguage, nil), svcCfg)
}

// buildMetadata returns nil when no YouTube Data API credential is set
func buildMetadata(ctx context.Context, cfg Config) *video.MetadataService {
	var (
		meta *video.MetadataService
		err  error
	)
	switch {
	case cfg.YouTubeAPIKey != "":
		meta, err = video.NewMetadataServiceWithAPIKey(ctx, cfg.YouTubeAPIKey)
	case cfg.YouTubeServiceAccount != "":
		meta, err = video.NewMetadataServiceFromServiceAccount(ctx, cfg.YouTubeServiceAccount)
	default:
		return nil
	}
	if err != nil {
		log.Printf("⚠️  Video title lookup disabled: %v", err)
		return nil
	}
	return meta
}
