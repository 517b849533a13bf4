package reconcile

import (
	"strings"
	"testing"
)

func TestReconcileHashtagsAppendsTrailingLine(t *testing.T) {
	content, tags, appended := reconcileHashtags("Hello world", []string{"a", "b"}, 3)

	if !appended {
		t.Error("expected append")
	}
	if !strings.HasSuffix(content, "\n\n#a #b") {
		t.Errorf("content = %q, want trailing %q", content, "#a #b")
	}
	// The count is a ceiling: two valid tags satisfy a request for three.
	if len(tags) != 2 {
		t.Errorf("tags = %v, want 2 entries", tags)
	}
}

func TestReconcileHashtagsTruncatesOverDelivery(t *testing.T) {
	metadata := []string{"one", "two", "three", "four", "five"}

	_, tags, _ := reconcileHashtags("Hello world", metadata, 2)

	if len(tags) != 2 || tags[0] != "#one" || tags[1] != "#two" {
		t.Errorf("tags = %v, want first two", tags)
	}
}

func TestReconcileHashtagsIsIdempotent(t *testing.T) {
	content, tags, appended := reconcileHashtags("Hello world", []string{"growth", "hiring"}, 2)
	if !appended {
		t.Fatal("first run should append")
	}

	again, tags2, appended2 := reconcileHashtags(content, []string{"growth", "hiring"}, 2)

	if appended2 {
		t.Error("second run must not append")
	}
	if again != content {
		t.Errorf("content changed on second run:\n%q\n%q", content, again)
	}
	if len(tags2) != len(tags) {
		t.Errorf("tags changed on second run: %v vs %v", tags, tags2)
	}
}

func TestReconcileHashtagsSkipsWhenAnyTagPresent(t *testing.T) {
	content := "Thoughts on hiring this quarter."

	got, tags, appended := reconcileHashtags(content, []string{"hiring", "growth"}, 2)

	// "hiring" already appears in the content, so nothing is appended even
	// though "growth" does not.
	if appended {
		t.Error("must not append when any tag text is already present")
	}
	if got != content {
		t.Errorf("content changed: %q", got)
	}
	if len(tags) != 2 {
		t.Errorf("tags = %v", tags)
	}
}

func TestReconcileHashtagsInlineFallback(t *testing.T) {
	content := "Big week for the team. #shipped #DevTools"

	got, tags, appended := reconcileHashtags(content, nil, 3)

	if appended {
		t.Error("inline tags are already in the content, nothing to append")
	}
	if got != content {
		t.Errorf("content changed: %q", got)
	}
	if len(tags) != 2 || tags[0] != "#shipped" || tags[1] != "#DevTools" {
		t.Errorf("tags = %v, want inline tags", tags)
	}
}

func TestReconcileHashtagsZeroRequested(t *testing.T) {
	content := "No tags please."

	got, _, appended := reconcileHashtags(content, []string{"ignored"}, 0)

	if appended || got != content {
		t.Errorf("content changed with zero requested: %q", got)
	}
}

func TestNormalizeHashtags(t *testing.T) {
	tests := []struct {
		name  string
		raw   []string
		limit int
		want  []string
	}{
		{
			name:  "prefixes and spacing",
			raw:   []string{"#Growth", "  hiring ", "machine learning"},
			limit: 0,
			want:  []string{"#Growth", "#hiring", "#machinelearning"},
		},
		{
			name:  "case insensitive dedupe keeps first",
			raw:   []string{"#Growth", "growth", "GROWTH"},
			limit: 0,
			want:  []string{"#Growth"},
		},
		{
			name:  "empty and bare hash dropped",
			raw:   []string{"", "#", "  ", "ok"},
			limit: 0,
			want:  []string{"#ok"},
		},
		{
			name:  "limit truncates",
			raw:   []string{"a", "b", "c"},
			limit: 2,
			want:  []string{"#a", "#b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeHashtags(tt.raw, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
