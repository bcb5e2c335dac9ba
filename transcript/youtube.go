package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	youtubeBaseURL      = "https://www.youtube.com"
	playerResponseMark  = "ytInitialPlayerResponse = "
	watchPageLimit      = 6 * 1024 * 1024
	timedTextLimit      = 2 * 1024 * 1024
	youtubeUserAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultFetchTimeout = 30 * time.Second
)

var (
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	htmlTagRe = regexp.MustCompile(`<[^>]*>`)
)

// YouTubeSource scrapes caption tracks from the public watch page
type YouTubeSource struct {
	client  *http.Client
	baseURL string
}

// YouTubeOption customizes a YouTubeSource
type YouTubeOption func(*YouTubeSource)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) YouTubeOption {
	return func(s *YouTubeSource) { s.client = c }
}

// WithBaseURL points the source at another host, used by tests
func WithBaseURL(u string) YouTubeOption {
	return func(s *YouTubeSource) { s.baseURL = strings.TrimRight(u, "/") }
}

// NewYouTubeSource creates a watch-page caption source
func NewYouTubeSource(opts ...YouTubeOption) *YouTubeSource {
	s := &YouTubeSource{
		client:  &http.Client{Timeout: defaultFetchTimeout},
		baseURL: youtubeBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

type timedText struct {
	Lines []timedLine `xml:"text"`
}

type timedLine struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Text     string  `xml:",chardata"`
}

// Snippets implements Source
func (s *YouTubeSource) Snippets(ctx context.Context, videoID string, languages []string) ([]Snippet, error) {
	if !videoIDRe.MatchString(videoID) {
		return nil, ErrInvalidVideoID
	}

	player, err := s.playerResponse(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if st := player.PlayabilityStatus; st != nil && st.Status != "OK" {
		if st.Status == "ERROR" {
			return nil, fmt.Errorf("%w: %s", ErrVideoUnavailable, st.Reason)
		}
		return nil, &RetrievalError{VideoID: videoID, Err: fmt.Errorf("video not playable (%s): %s", st.Status, st.Reason)}
	}

	if player.Captions == nil || len(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks) == 0 {
		return nil, ErrTranscriptsDisabled
	}
	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks

	track, ok := pickTrack(tracks, languages)
	if !ok {
		return nil, &NoTranscriptFoundError{VideoID: videoID, Languages: languages, Available: trackLanguages(tracks)}
	}
	if needsPoToken(track.BaseURL) {
		return nil, &RetrievalError{VideoID: videoID, Err: errors.New("caption track requires a proof-of-origin token")}
	}

	snippets, err := s.timedText(ctx, track.BaseURL)
	if err != nil {
		return nil, &RetrievalError{VideoID: videoID, Err: err}
	}
	return snippets, nil
}

func (s *YouTubeSource) playerResponse(ctx context.Context, videoID string) (*playerResponse, error) {
	watchURL := s.baseURL + "/watch?v=" + url.QueryEscape(videoID)
	body, err := s.get(ctx, watchURL, watchPageLimit)
	if err != nil {
		return nil, &RetrievalError{VideoID: videoID, Err: fmt.Errorf("watch page: %w", err)}
	}

	idx := strings.Index(string(body), playerResponseMark)
	if idx < 0 {
		return nil, &RetrievalError{VideoID: videoID, Err: errors.New("ytInitialPlayerResponse not found in watch page")}
	}
	raw := extractJSON(body[idx+len(playerResponseMark):])
	if raw == nil {
		return nil, &RetrievalError{VideoID: videoID, Err: errors.New("failed to extract ytInitialPlayerResponse JSON")}
	}

	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, &RetrievalError{VideoID: videoID, Err: fmt.Errorf("decode ytInitialPlayerResponse: %w", err)}
	}
	return &player, nil
}

func (s *YouTubeSource) timedText(ctx context.Context, trackURL string) ([]Snippet, error) {
	// srv3 adds formatting markup; the plain format is easier to clean up
	trackURL = strings.Replace(trackURL, "&fmt=srv3", "", 1)

	body, err := s.get(ctx, trackURL, timedTextLimit)
	if err != nil {
		return nil, fmt.Errorf("timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	snippets := make([]Snippet, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := htmlTagRe.ReplaceAllString(html.UnescapeString(line.Text), "")
		if text == "" {
			continue
		}
		snippets = append(snippets, Snippet{Text: text, Start: line.Start, Duration: line.Duration})
	}
	return snippets, nil
}

func (s *YouTubeSource) get(ctx context.Context, u string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", youtubeUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// pickTrack walks the requested languages in order, preferring a manually
// created track over an auto-generated one for each language.
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	for _, lang := range languages {
		var generated *captionTrack
		for i := range tracks {
			if tracks[i].LanguageCode != lang {
				continue
			}
			if tracks[i].Kind != "asr" {
				return tracks[i], true
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return *generated, true
		}
	}
	return captionTrack{}, false
}

// needsPoToken reports whether a caption URL only works inside a browser
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

func trackLanguages(tracks []captionTrack) []string {
	langs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		langs = append(langs, t.LanguageCode)
	}
	return langs
}

// extractJSON returns the JSON object starting at b[0] by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
