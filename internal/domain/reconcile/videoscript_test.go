package reconcile

import (
	"strings"
	"testing"
)

func TestVideoScriptProseSectionOrder(t *testing.T) {
	obj := map[string]interface{}{
		"cta":          "Follow for more.",
		"summary":      "Small rituals compound.",
		"hook":         "Your standup is wasting an hour a week.",
		"introduction": "We timed ours for a month.",
		"main_content": []interface{}{"Cut the status round", "Write blockers async"},
	}

	got := videoScriptProse(obj)

	order := []string{
		"Your standup is wasting an hour a week.",
		"We timed ours for a month.",
		"1. Cut the status round",
		"2. Write blockers async",
		"Small rituals compound.",
		"Follow for more.",
	}
	last := -1
	for _, section := range order {
		idx := strings.Index(got, section)
		if idx < 0 {
			t.Fatalf("section %q missing from:\n%s", section, got)
		}
		if idx < last {
			t.Errorf("section %q out of order in:\n%s", section, got)
		}
		last = idx
	}
}

func TestVideoScriptProseKeyAliases(t *testing.T) {
	obj := map[string]interface{}{
		"Intro":          "Opening line.",
		"points":         []interface{}{"One thing"},
		"call_to_action": "Subscribe.",
	}

	got := videoScriptProse(obj)

	for _, want := range []string{"Opening line.", "1. One thing", "Subscribe."} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestVideoScriptProseUnknownKeysKept(t *testing.T) {
	obj := map[string]interface{}{
		"hook":       "Hook line.",
		"b_roll":     "Office shots.",
		"sound_note": "Upbeat track.",
	}

	got := videoScriptProse(obj)

	if !strings.Contains(got, "b_roll: Office shots.") {
		t.Errorf("unknown key dropped:\n%s", got)
	}
	if !strings.Contains(got, "sound_note: Upbeat track.") {
		t.Errorf("unknown key dropped:\n%s", got)
	}
	// Unknown keys come after the known sections, sorted.
	if strings.Index(got, "b_roll:") < strings.Index(got, "Hook line.") {
		t.Errorf("unknown keys should trail the known sections:\n%s", got)
	}
	if strings.Index(got, "sound_note:") < strings.Index(got, "b_roll:") {
		t.Errorf("unknown keys should be sorted:\n%s", got)
	}
}

func TestRenderScriptPoints(t *testing.T) {
	t.Run("structured points", func(t *testing.T) {
		points := []interface{}{
			map[string]interface{}{
				"point":  "Timebox ruthlessly",
				"visual": "A stopwatch on a desk",
				"script": "Set a hard fifteen minute cap.",
			},
			map[string]interface{}{
				"title": "Rotate the facilitator",
				"text":  "Ownership keeps it sharp.",
				"mood":  "energetic",
			},
		}

		blocks := renderScriptPoints(points)
		if len(blocks) != 2 {
			t.Fatalf("blocks = %v", blocks)
		}
		if !strings.HasPrefix(blocks[0], "1. Timebox ruthlessly") {
			t.Errorf("block[0] = %q", blocks[0])
		}
		if !strings.Contains(blocks[0], "(Visual: A stopwatch on a desk)") {
			t.Errorf("visual cue missing: %q", blocks[0])
		}
		if !strings.Contains(blocks[0], "Set a hard fifteen minute cap.") {
			t.Errorf("script line missing: %q", blocks[0])
		}
		if !strings.HasPrefix(blocks[1], "2. Rotate the facilitator") {
			t.Errorf("block[1] = %q", blocks[1])
		}
		// Leftover keys on a point are kept, labeled.
		if !strings.Contains(blocks[1], "mood: energetic") {
			t.Errorf("leftover key dropped: %q", blocks[1])
		}
	})

	t.Run("untitled point gets a fallback header", func(t *testing.T) {
		blocks := renderScriptPoints([]interface{}{
			map[string]interface{}{"script": "Just the narration."},
		})
		if len(blocks) != 1 || !strings.HasPrefix(blocks[0], "1. Point") {
			t.Fatalf("blocks = %v", blocks)
		}
	})

	t.Run("single string body", func(t *testing.T) {
		blocks := renderScriptPoints("  One continuous narration.  ")
		if len(blocks) != 1 || blocks[0] != "One continuous narration." {
			t.Fatalf("blocks = %v", blocks)
		}
	})

	t.Run("map body numbered in key order", func(t *testing.T) {
		blocks := renderScriptPoints(map[string]interface{}{
			"a_first":  "Alpha",
			"b_second": "Beta",
		})
		if len(blocks) != 2 {
			t.Fatalf("blocks = %v", blocks)
		}
		if blocks[0] != "1. Alpha" || blocks[1] != "2. Beta" {
			t.Errorf("blocks = %v", blocks)
		}
	})

	t.Run("empty and unsupported values", func(t *testing.T) {
		if blocks := renderScriptPoints("   "); blocks != nil {
			t.Errorf("blocks = %v, want nil", blocks)
		}
		if blocks := renderScriptPoints(42); blocks != nil {
			t.Errorf("blocks = %v, want nil", blocks)
		}
	})
}

func TestStructuredProse(t *testing.T) {
	obj := map[string]interface{}{
		"opening": "We hired our first PM.",
		"closing": "More soon.",
		"count":   float64(3),
	}

	got := structuredProse(obj)

	// Keys render in sorted order; non-strings are labeled.
	want := "More soon.\n\ncount: 3\n\nWe hired our first PM."
	if got != want {
		t.Errorf("structuredProse =\n%q\nwant\n%q", got, want)
	}
}
