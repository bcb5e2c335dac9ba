package api

import (
	"log"
	"mime"
	"net/http"
	"slices"
	"strings"

	"postcraft/config"
	"postcraft/pipeline"
	"postcraft/present"
	"postcraft/types"

	"github.com/gin-gonic/gin"
)

// Messages shown by the web form
const (
	PageTitle          = "📱 Social Media Content Generator"
	MsgMissingVideoID  = "Please provide a YouTube video ID"
	MsgMissingPlatform = "Choose at least one social media platform"
)

type platformOption struct {
	Name    string
	Checked bool
}

type pageData struct {
	PageTitle   string
	VideoID     string
	Instruction string
	Languages   string
	Platforms   []platformOption
	Warning     string
	Error       string
	VideoTitle  string
	Sections    []present.Section
}

func newPageData(selected []string) pageData {
	options := make([]platformOption, 0, len(types.Platforms))
	for _, p := range types.Platforms {
		options = append(options, platformOption{Name: p, Checked: slices.Contains(selected, p)})
	}
	return pageData{PageTitle: PageTitle, Platforms: options}
}

type webController struct {
	gen Generator
}

// RegisterWebRoutes registers the HTML form, generation and download endpoints.
func RegisterWebRoutes(r *gin.Engine, gen Generator) {
	wc := &webController{gen: gen}
	r.GET("/", wc.handleIndex)
	r.POST("/generate", wc.handleGenerate)
	r.POST("/download", handleDownload)
}

func (wc *webController) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPageData(types.DefaultPlatforms))
}

// handleGenerate runs the pipeline and renders one section per post. Any
// failure renders a single message and no sections.
func (wc *webController) handleGenerate(c *gin.Context) {
	videoID := strings.TrimSpace(c.PostForm("video_id"))
	instruction := strings.TrimSpace(c.PostForm("instruction"))
	languages := c.PostForm("languages")

	platforms, err := types.ParsePlatforms(c.PostFormArray("platform"))

	data := newPageData(platforms)
	data.VideoID = videoID
	data.Instruction = instruction
	data.Languages = languages

	switch {
	case err != nil:
		data.Error = err.Error()
		c.HTML(http.StatusBadRequest, "index.html", data)
		return
	case videoID == "":
		data.Warning = MsgMissingVideoID
		c.HTML(http.StatusBadRequest, "index.html", data)
		return
	case len(platforms) == 0:
		data.Warning = MsgMissingPlatform
		c.HTML(http.StatusBadRequest, "index.html", data)
		return
	}

	log.Printf("📥 Web generation request: video=%s platforms=%v", videoID, platforms)

	res, err := wc.gen.Run(c.Request.Context(), pipeline.Request{
		VideoID:     videoID,
		Languages:   splitList(languages),
		Platforms:   platforms,
		Instruction: instruction,
	})
	if err != nil {
		log.Printf("❌ Web generation failed for %s: %v", videoID, err)
		data.Error = err.Error()
		c.HTML(http.StatusOK, "index.html", data)
		return
	}

	data.VideoTitle = res.Title
	data.Sections = present.Sections(res.Posts)
	c.HTML(http.StatusOK, "index.html", data)
}

// handleDownload returns the (possibly edited) post as a text attachment
func handleDownload(c *gin.Context) {
	platform, ok := c.GetPostForm("platform")
	if !ok {
		platform = config.UnknownPlatform
	}
	content := c.PostForm("content")

	sections := present.Sections([]types.Post{{Platform: platform, Content: content}})
	s := sections[0]

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": s.FileName}))
	c.Data(http.StatusOK, s.MIMEType, []byte(s.Content))
}
