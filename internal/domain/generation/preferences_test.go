package generation

import (
	"testing"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

func TestExtractPreferencesLength(t *testing.T) {
	tests := []struct {
		name    string
		message string
		seed    Length
		want    Length
	}{
		{
			name:    "explicit long overrides caller",
			message: "Write a detailed post about hiring",
			seed:    LengthShort,
			want:    LengthLong,
		},
		{
			name:    "shorter keyword",
			message: "make it shorter please",
			seed:    LengthLong,
			want:    LengthShort,
		},
		{
			name:    "medium keyword",
			message: "a medium length post on team rituals",
			seed:    LengthShort,
			want:    LengthMedium,
		},
		{
			name:    "no keyword keeps caller value",
			message: "write about async standups",
			seed:    LengthLong,
			want:    LengthLong,
		},
		{
			name:    "ambiguous resolves to first scanned list",
			message: "short but detailed please",
			seed:    LengthMedium,
			want:    LengthLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Length = tt.seed
			got := ExtractPreferences(tt.message, opts)
			if got.Length != tt.want {
				t.Errorf("Length = %q, want %q", got.Length, tt.want)
			}
		})
	}
}

func TestExtractPreferencesHashtagCount(t *testing.T) {
	tests := []struct {
		name    string
		message string
		seed    int
		want    int
	}{
		{name: "explicit count", message: "use 3 hashtags", seed: 4, want: 3},
		{name: "explicit colon form", message: "hashtags: 7", seed: 4, want: 7},
		{name: "more adds three", message: "add more hashtags", seed: 4, want: 7},
		{name: "more caps at ten", message: "more hashtags please", seed: 9, want: 10},
		{name: "fewer subtracts two", message: "fewer hashtags", seed: 4, want: 2},
		{name: "fewer floors at zero", message: "fewer hashtags", seed: 1, want: 0},
		{name: "none", message: "no hashtags on this one", seed: 4, want: 0},
		{name: "default when silent", message: "write about burnout", seed: 4, want: 4},
		{name: "explicit wins over relative wording", message: "2 hashtags, no more hashtags than that", seed: 4, want: 2},
		{name: "explicit zero", message: "0 hashtags", seed: 4, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.HashtagCount = tt.seed
			got := ExtractPreferences(tt.message, opts)
			if got.HashtagCount != tt.want {
				t.Errorf("HashtagCount = %d, want %d", got.HashtagCount, tt.want)
			}
		})
	}
}

func TestExtractPreferencesSlideCount(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    int
	}{
		{name: "in range", message: "a carousel with 8 slides", want: 8},
		{name: "above max clamps", message: "20 slides about leadership", want: 15},
		{name: "pages synonym", message: "make 6 pages", want: 6},
		{name: "silent leaves zero", message: "carousel about focus", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPreferences(tt.message, DefaultOptions())
			if got.SlideCount != tt.want {
				t.Errorf("SlideCount = %d, want %d", got.SlideCount, tt.want)
			}
		})
	}
}

func TestExtractPreferencesIsPure(t *testing.T) {
	seed := Options{
		Format:       post.FormatCarousel,
		Length:       LengthLong,
		HashtagCount: 5,
		SlideCount:   10,
	}
	_ = ExtractPreferences("shorter, 2 hashtags, 4 slides", seed)

	if seed.Length != LengthLong || seed.HashtagCount != 5 || seed.SlideCount != 10 {
		t.Errorf("input options mutated: %+v", seed)
	}
}

func TestIsOpenEnded(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"write a random post", true},
		{"surprise me", true},
		{"leadership", true},
		{"post about leadership", true},
		{"write a post about leadership styles", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := IsOpenEnded(tt.message); got != tt.want {
				t.Errorf("IsOpenEnded(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}
