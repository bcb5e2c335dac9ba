package video

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrVideoNotFound is returned when the Data API has no such video
var ErrVideoNotFound = errors.New("video not found")

// Metadata is the subset of a video's snippet used for presentation
type Metadata struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	Description  string `json:"description"`
}

// MetadataService looks up video details through the YouTube Data API v3
type MetadataService struct {
	service *youtube.Service
}

// NewMetadataServiceWithAPIKey authenticates with a plain API key
func NewMetadataServiceWithAPIKey(ctx context.Context, apiKey string, opts ...option.ClientOption) (*MetadataService, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &MetadataService{service: service}, nil
}

// NewMetadataServiceFromServiceAccount authenticates with a service account key file
func NewMetadataServiceFromServiceAccount(ctx context.Context, serviceAccountFile string) (*MetadataService, error) {
	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(data, youtube.YoutubeReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account: %w", err)
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &MetadataService{service: service}, nil
}

// Lookup fetches the snippet for videoID
func (m *MetadataService) Lookup(ctx context.Context, videoID string) (*Metadata, error) {
	resp, err := m.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list video %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, fmt.Errorf("%s: %w", videoID, ErrVideoNotFound)
	}

	item := resp.Items[0]
	log.Printf("🎬 Found video: %s", item.Snippet.Title)
	return &Metadata{
		ID:           item.Id,
		Title:        item.Snippet.Title,
		ChannelTitle: item.Snippet.ChannelTitle,
		Description:  item.Snippet.Description,
	}, nil
}

// Title returns just the video title
func (m *MetadataService) Title(ctx context.Context, videoID string) (string, error) {
	meta, err := m.Lookup(ctx, videoID)
	if err != nil {
		return "", err
	}
	return meta.Title, nil
}
