package types

import (
	"fmt"
	"strings"
)

// Post is one generated platform-specific draft
type Post struct {
	Platform string `json:"platform"`
	Content  string `json:"content"`
}

// PostsEnvelope is the structured agent output: {"response": [...]}
type PostsEnvelope struct {
	Response []Post `json:"response"`
}

// Supported platforms
const (
	PlatformLinkedIn  = "LinkedIn"
	PlatformInstagram = "Instagram"
	PlatformTwitter   = "Twitter"
)

// Platforms lists every supported platform in display order
var Platforms = []string{PlatformLinkedIn, PlatformInstagram, PlatformTwitter}

// DefaultPlatforms are preselected in interactive front-ends
var DefaultPlatforms = []string{PlatformLinkedIn, PlatformInstagram}

var platformAliases = map[string]string{
	"linkedin":  PlatformLinkedIn,
	"li":        PlatformLinkedIn,
	"instagram": PlatformInstagram,
	"ig":        PlatformInstagram,
	"twitter":   PlatformTwitter,
	"tw":        PlatformTwitter,
	"x":         PlatformTwitter,
}

// ParsePlatforms normalizes platform names, keeping input order and
// dropping repeats. Unknown names are an error.
func ParsePlatforms(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		p, ok := platformAliases[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unsupported platform %q", name)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}
