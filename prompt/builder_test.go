package prompt

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	cases := []struct {
		name        string
		transcript  string
		platforms   []string
		instruction string
		want        string
	}{
		{
			name:       "default instruction",
			transcript: "T",
			platforms:  []string{"LinkedIn", "Instagram"},
			want:       "Generate LinkedIn and Instagram posts based on this video transcript: T",
		},
		{
			name:        "user instruction",
			transcript:  "T",
			platforms:   []string{"LinkedIn"},
			instruction: "Make it punchy",
			want:        "Make it punchy for LinkedIn based on this video transcript: T",
		},
		{
			name:       "three platforms",
			transcript: "T",
			platforms:  []string{"LinkedIn", "Instagram", "Twitter"},
			want:       "Generate LinkedIn and Instagram and Twitter posts based on this video transcript: T",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Build(c.transcript, c.platforms, c.instruction)
			if got != c.want {
				t.Fatalf("Build() = %q; want %q", got, c.want)
			}
		})
	}
}

func TestBuildDoesNotTruncate(t *testing.T) {
	long := strings.Repeat("word ", 100000)
	got := Build(long, []string{"Twitter"}, "")
	if !strings.HasSuffix(got, long) {
		t.Fatalf("transcript was altered; got length %d", len(got))
	}
}
