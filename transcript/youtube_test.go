package transcript

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVideoID = "OZ5OZZZ2cvk"

type fakeYouTube struct {
	player   string
	captions map[string]string // path -> timedtext XML
	status   int
}

func (f *fakeYouTube) server(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/watch" {
			if f.status != 0 {
				w.WriteHeader(f.status)
				return
			}
			player := strings.ReplaceAll(f.player, "{{base}}", srv.URL)
			fmt.Fprintf(w, "<html><script>var ytInitialPlayerResponse = %s;var meta = {};</script></html>", player)
			return
		}
		if body, ok := f.captions[r.URL.Path]; ok {
			w.Header().Set("Content-Type", "text/xml")
			fmt.Fprint(w, body)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func playerWithTracks(tracks string) string {
	return `{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` + tracks + `]}}}`
}

func TestYouTubeSourceSnippets(t *testing.T) {
	yt := &fakeYouTube{
		player: playerWithTracks(
			`{"baseUrl":"{{base}}/api/timedtext?lang=en&kind=asr","languageCode":"en","kind":"asr"},` +
				`{"baseUrl":"{{base}}/api/timedtext/manual?lang=en","languageCode":"en"}`),
		captions: map[string]string{
			"/api/timedtext/manual": `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
				`<text start="0.5" dur="1.2">Hello &amp;amp; welcome</text>` +
				`<text start="1.7" dur="2">it&amp;#39;s &lt;i&gt;great&lt;/i&gt;</text>` +
				`<text start="3.7" dur="1"></text>` +
				`</transcript>`,
			"/api/timedtext": `<transcript><text start="0" dur="1">auto</text></transcript>`,
		},
	}
	srv := yt.server(t)

	src := NewYouTubeSource(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	snippets, err := src.Snippets(context.Background(), testVideoID, []string{"en"})

	require.NoError(t, err)
	require.Len(t, snippets, 2)
	assert.Equal(t, Snippet{Text: "Hello & welcome", Start: 0.5, Duration: 1.2}, snippets[0])
	assert.Equal(t, "it's great", snippets[1].Text)
}

func TestYouTubeSourceLanguageOrder(t *testing.T) {
	yt := &fakeYouTube{
		player: playerWithTracks(
			`{"baseUrl":"{{base}}/en","languageCode":"en"},` +
				`{"baseUrl":"{{base}}/de","languageCode":"de","kind":"asr"}`),
		captions: map[string]string{
			"/en": `<transcript><text start="0" dur="1">english</text></transcript>`,
			"/de": `<transcript><text start="0" dur="1">deutsch</text></transcript>`,
		},
	}
	srv := yt.server(t)
	src := NewYouTubeSource(WithBaseURL(srv.URL))

	snippets, err := src.Snippets(context.Background(), testVideoID, []string{"de", "en"})
	require.NoError(t, err)
	require.Len(t, snippets, 1)
	assert.Equal(t, "deutsch", snippets[0].Text)
}

func TestYouTubeSourceFailures(t *testing.T) {
	cases := []struct {
		name    string
		videoID string
		yt      *fakeYouTube
		check   func(t *testing.T, err error)
	}{
		{
			name:    "malformed id",
			videoID: "https://youtu.be/x",
			yt:      &fakeYouTube{},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInvalidVideoID)
			},
		},
		{
			name:    "unavailable",
			videoID: testVideoID,
			yt:      &fakeYouTube{player: `{"playabilityStatus":{"status":"ERROR","reason":"This video is unavailable"}}`},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrVideoUnavailable)
			},
		},
		{
			name:    "no captions",
			videoID: testVideoID,
			yt:      &fakeYouTube{player: `{"playabilityStatus":{"status":"OK"}}`},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrTranscriptsDisabled)
			},
		},
		{
			name:    "language missing",
			videoID: testVideoID,
			yt:      &fakeYouTube{player: playerWithTracks(`{"baseUrl":"{{base}}/fr","languageCode":"fr"}`)},
			check: func(t *testing.T, err error) {
				var nf *NoTranscriptFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, []string{"en"}, nf.Languages)
				assert.Equal(t, []string{"fr"}, nf.Available)
			},
		},
		{
			name:    "login required",
			videoID: testVideoID,
			yt:      &fakeYouTube{player: `{"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"Sign in"}}`},
			check: func(t *testing.T, err error) {
				var re *RetrievalError
				assert.True(t, errors.As(err, &re))
			},
		},
		{
			name:    "watch page error",
			videoID: testVideoID,
			yt:      &fakeYouTube{status: http.StatusTooManyRequests},
			check: func(t *testing.T, err error) {
				var re *RetrievalError
				require.True(t, errors.As(err, &re))
				assert.Contains(t, err.Error(), "429")
			},
		},
		{
			name:    "po token track",
			videoID: testVideoID,
			yt:      &fakeYouTube{player: playerWithTracks(`{"baseUrl":"{{base}}/en?x=1&exp=xpe","languageCode":"en"}`)},
			check: func(t *testing.T, err error) {
				var re *RetrievalError
				assert.True(t, errors.As(err, &re))
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := c.yt.server(t)
			src := NewYouTubeSource(WithBaseURL(srv.URL))
			_, err := src.Snippets(context.Background(), c.videoID, []string{"en"})
			require.Error(t, err)
			c.check(t, err)
		})
	}
}

func TestExtractJSON(t *testing.T) {
	in := []byte(`{"a":"}{\"","b":{"c":1}};rest`)
	assert.Equal(t, `{"a":"}{\"","b":{"c":1}}`, string(extractJSON(in)))
	assert.Nil(t, extractJSON([]byte(`nope`)))
	assert.Nil(t, extractJSON([]byte(`{"open":`)))
}
