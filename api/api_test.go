package api

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postcraft/pipeline"
	"postcraft/types"
)

type fakeGenerator struct {
	result *pipeline.Result
	err    error
	calls  int
	req    pipeline.Request
}

func (f *fakeGenerator) Run(_ context.Context, req pipeline.Request) (*pipeline.Result, error) {
	f.calls++
	f.req = req
	return f.result, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func postForm(t *testing.T, r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := NewRouter(&fakeGenerator{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestIndexDefaults(t *testing.T) {
	r := NewRouter(&fakeGenerator{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Social Media Content Generator")
	assert.Contains(t, body, `value="LinkedIn" checked`)
	assert.Contains(t, body, `value="Instagram" checked`)
	assert.Contains(t, body, `value="Twitter">`)
}

func TestWebGenerateRendersSections(t *testing.T) {
	gen := &fakeGenerator{result: &pipeline.Result{
		VideoID: "OZ5OZZZ2cvk",
		Title:   "Launch day",
		Posts:   []types.Post{{Platform: "LinkedIn", Content: "X"}, {Platform: "Instagram", Content: "<b>Y</b>"}},
	}}
	r := NewRouter(gen)

	w := postForm(t, r, "/generate", url.Values{
		"video_id":    {"OZ5OZZZ2cvk"},
		"instruction": {"Make it punchy"},
		"languages":   {"en, de"},
		"platform":    {"LinkedIn", "Instagram"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, 2, strings.Count(body, "<details open>"))
	assert.Contains(t, body, "LinkedIn Post")
	assert.Contains(t, body, "Download LinkedIn Content")
	assert.Contains(t, body, "Download Instagram Content")
	assert.Contains(t, body, "&lt;b&gt;Y&lt;/b&gt;")
	assert.Contains(t, body, "Launch day")

	assert.Equal(t, pipeline.Request{
		VideoID:     "OZ5OZZZ2cvk",
		Languages:   []string{"en", "de"},
		Platforms:   []string{"LinkedIn", "Instagram"},
		Instruction: "Make it punchy",
	}, gen.req)
}

func TestWebGenerateValidation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{name: "missing video id", form: url.Values{"platform": {"LinkedIn"}}, want: MsgMissingVideoID},
		{name: "no platform", form: url.Values{"video_id": {"OZ5OZZZ2cvk"}}, want: MsgMissingPlatform},
		{name: "unknown platform", form: url.Values{"video_id": {"OZ5OZZZ2cvk"}, "platform": {"MySpace"}}, want: "unsupported platform"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			w := postForm(t, NewRouter(gen), "/generate", tt.form)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
			assert.NotContains(t, w.Body.String(), "<details open>")
			assert.Zero(t, gen.calls)
		})
	}
}

func TestWebGenerateFailureShowsSingleMessage(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("Could not retrieve a transcript for the video OZ5OZZZ2cvk!")}
	w := postForm(t, NewRouter(gen), "/generate", url.Values{
		"video_id": {"OZ5OZZZ2cvk"},
		"platform": {"LinkedIn"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, 1, strings.Count(body, "Something went wrong:"))
	assert.Contains(t, body, "OZ5OZZZ2cvk")
	assert.NotContains(t, body, "<details open>")
}

func TestDownload(t *testing.T) {
	w := postForm(t, NewRouter(&fakeGenerator{}), "/download", url.Values{
		"platform": {"LinkedIn"},
		"content":  {"edited post"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=linkedin_post.txt", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
	assert.Equal(t, "edited post", w.Body.String())
}

func TestDownloadUnknownPlatform(t *testing.T) {
	w := postForm(t, NewRouter(&fakeGenerator{}), "/download", url.Values{"content": {"x"}})
	assert.Equal(t, "attachment; filename=unknown_post.txt", w.Header().Get("Content-Disposition"))
}

func TestDownloadHostilePlatform(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		want     string
	}{
		{name: "quote injection", platform: `x"; filename="../../evil.sh`, want: "evil_sh_post.txt"},
		{name: "path traversal", platform: "../../etc/passwd", want: "passwd_post.txt"},
		{name: "spaces", platform: "Threads App", want: "threads_app_post.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(t, NewRouter(&fakeGenerator{}), "/download", url.Values{
				"platform": {tt.platform},
				"content":  {"x"},
			})
			require.Equal(t, http.StatusOK, w.Code)

			disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
			require.NoError(t, err)
			assert.Equal(t, "attachment", disposition)
			assert.Equal(t, map[string]string{"filename": tt.want}, params)
		})
	}
}

func postJSON(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIGenerate(t *testing.T) {
	gen := &fakeGenerator{result: &pipeline.Result{
		VideoID: "OZ5OZZZ2cvk",
		Title:   "Launch day",
		Posts:   []types.Post{{Platform: "Twitter", Content: "X"}},
	}}
	w := postJSON(t, NewRouter(gen), `{"video_id":"OZ5OZZZ2cvk","platforms":["x"],"languages":["en"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"video_id":"OZ5OZZZ2cvk","title":"Launch day","response":[{"platform":"Twitter","content":"X"}]}`, w.Body.String())
	assert.Equal(t, []string{"Twitter"}, gen.req.Platforms)
}

func TestAPIGenerateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		genErr     error
		wantStatus int
		wantError  string
	}{
		{name: "bad json", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "missing video", body: `{"platforms":["LinkedIn"]}`, wantStatus: http.StatusBadRequest, wantError: MsgMissingVideoID},
		{name: "no platforms", body: `{"video_id":"OZ5OZZZ2cvk"}`, wantStatus: http.StatusBadRequest, wantError: MsgMissingPlatform},
		{name: "pipeline failure", body: `{"video_id":"OZ5OZZZ2cvk","platforms":["LinkedIn"]}`, genErr: errors.New("agent run: boom"), wantStatus: http.StatusBadGateway, wantError: "agent run: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, NewRouter(&fakeGenerator{err: tt.genErr}), tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}
