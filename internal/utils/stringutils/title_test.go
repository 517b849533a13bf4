package stringutils

import (
	"strings"
	"testing"
)

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{
			name:    "short content unchanged",
			content: "Write about remote work",
			maxLen:  60,
			want:    "Write about remote work",
		},
		{
			name:    "strips URLs",
			content: "Summarize https://example.com/article for my followers",
			maxLen:  60,
			want:    "Summarize for my followers",
		},
		{
			name:    "strips markdown links keeping text",
			content: "Post about [our launch](https://example.com) today",
			maxLen:  60,
			want:    "Post about our launch today",
		},
		{
			name:    "empty after sanitize",
			content: "https://only-a-link.example.com",
			maxLen:  60,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateTitle(tt.content, tt.maxLen); got != tt.want {
				t.Errorf("GenerateTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateTitleWordBoundary(t *testing.T) {
	long := "A detailed breakdown of why engineering teams adopt asynchronous communication habits"
	got := TruncateTitle(long, 40)

	if len(got) > 40 {
		t.Errorf("truncated title length = %d, want <= 40", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	body := strings.TrimSuffix(got, "...")
	if strings.HasSuffix(body, " ") {
		t.Errorf("expected trimmed word boundary, got %q", got)
	}
}
