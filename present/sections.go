package present

import (
	"path/filepath"
	"strings"

	"postcraft/agent"
	"postcraft/config"
	"postcraft/types"
)

// Section is one post ready for display or download
type Section struct {
	Label    string `json:"label"`
	Platform string `json:"platform"`
	Content  string `json:"content"`
	FileName string `json:"file_name"`
	MIMEType string `json:"mime_type"`
}

// Sections maps posts to display sections in order. Platforms are shown
// as the model wrote them; a missing platform was already defaulted by
// the decoder.
func Sections(posts []types.Post) []Section {
	out := make([]Section, 0, len(posts))
	for _, p := range posts {
		platform := p.Platform
		out = append(out, Section{
			Label:    platform + " Post",
			Platform: platform,
			Content:  p.Content,
			FileName: FileName(platform),
			MIMEType: config.PostMIMEType,
		})
	}
	return out
}

// DecodeSections parses the agent's {"response": [...]} output. Any
// failure returns the error and no sections.
func DecodeSections(raw string) ([]Section, error) {
	posts, err := agent.DecodePosts(raw)
	if err != nil {
		return nil, err
	}
	return Sections(posts), nil
}

// FileName is the download name for a platform's post, e.g. linkedin_post.txt.
// The platform is model output, so it is reduced to a single path element
// of [a-z0-9_-]; anything left empty becomes "unknown".
func FileName(platform string) string {
	base := filepath.Base(strings.ToLower(strings.TrimSpace(platform)))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	name := strings.Trim(b.String(), "_")
	if name == "" {
		name = strings.ToLower(config.UnknownPlatform)
	}
	return name + config.PostFileSuffix
}
