package api

import (
	"context"
	"embed"
	"html/template"
	"strings"

	"postcraft/pipeline"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var templatesFS embed.FS

// Generator runs one post generation
type Generator interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(gen Generator) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/index.html")))

	// Register resource routers
	RegisterWebRoutes(r, gen)
	RegisterGenerateRoutes(r, gen)
	RegisterHealthRoutes(r)
	return r
}

// splitList parses a comma separated form value
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
