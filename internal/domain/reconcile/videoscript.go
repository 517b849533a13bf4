package reconcile

import (
	"fmt"
	"strings"

	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/post"
)

// proseFromStructured converts a structured post_content value into plain
// text. Video scripts get the fixed section-ordering renderer; any other
// format gets the generic flattener.
func proseFromStructured(obj map[string]interface{}, format post.Format) string {
	if format == post.FormatVideoScript {
		return videoScriptProse(obj)
	}
	return structuredProse(obj)
}

// videoScriptProse renders a structured script as readable prose in fixed
// section order: hook, introduction, main content points (each a numbered
// sub-header with optional visual cue and script line), summary, call to
// action. Keys outside the known sections are dumped verbatim at the end so
// nothing the provider wrote is lost.
func videoScriptProse(obj map[string]interface{}) string {
	var blocks []string
	consumed := make(map[string]bool)

	appendSection := func(names ...string) {
		value, key := lookupKey(obj, names...)
		if key == "" {
			return
		}
		consumed[key] = true
		if text := stringValue(value); text != "" {
			blocks = append(blocks, text)
		}
	}

	appendSection("hook")
	appendSection("introduction", "intro")

	if value, key := lookupKey(obj, "main_content", "main content", "points", "sections", "body"); key != "" {
		consumed[key] = true
		blocks = append(blocks, renderScriptPoints(value)...)
	}

	appendSection("summary")
	appendSection("cta", "call_to_action", "call to action")

	for _, key := range sortedKeys(obj) {
		if consumed[key] {
			continue
		}
		if text := stringValue(obj[key]); text != "" {
			blocks = append(blocks, fmt.Sprintf("%s: %s", key, text))
		}
	}

	return strings.Join(blocks, "\n\n")
}

func renderScriptPoints(value interface{}) []string {
	switch v := value.(type) {
	case []interface{}:
		blocks := make([]string, 0, len(v))
		for i, item := range v {
			if block := renderScriptPoint(i+1, item); block != "" {
				blocks = append(blocks, block)
			}
		}
		return blocks
	case map[string]interface{}:
		blocks := make([]string, 0, len(v))
		for i, key := range sortedKeys(v) {
			if block := renderScriptPoint(i+1, v[key]); block != "" {
				blocks = append(blocks, block)
			}
		}
		return blocks
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return []string{trimmed}
		}
	}
	return nil
}

func renderScriptPoint(n int, item interface{}) string {
	switch v := item.(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return fmt.Sprintf("%d. %s", n, trimmed)
		}
		return ""
	case map[string]interface{}:
		consumed := make(map[string]bool)

		take := func(names ...string) string {
			value, key := lookupKey(v, names...)
			if key == "" {
				return ""
			}
			consumed[key] = true
			return stringValue(value)
		}

		title := take("point", "title", "header", "heading")
		visual := take("visual", "visual_cue", "visual description", "visual_description")
		script := take("script", "text", "content", "line", "narration")

		var builder strings.Builder
		if title != "" {
			fmt.Fprintf(&builder, "%d. %s", n, title)
		} else {
			fmt.Fprintf(&builder, "%d. Point", n)
		}
		if visual != "" {
			builder.WriteString("\n(Visual: ")
			builder.WriteString(visual)
			builder.WriteString(")")
		}
		if script != "" {
			builder.WriteString("\n")
			builder.WriteString(script)
		}
		for _, key := range sortedKeys(v) {
			if consumed[key] {
				continue
			}
			if text := stringValue(v[key]); text != "" {
				builder.WriteString("\n")
				builder.WriteString(key)
				builder.WriteString(": ")
				builder.WriteString(text)
			}
		}
		return builder.String()
	}
	return ""
}

// structuredProse flattens an unexpected structured post_content into plain
// text: string values become paragraphs in key order, anything else is dumped
// verbatim.
func structuredProse(obj map[string]interface{}) string {
	blocks := make([]string, 0, len(obj))
	for _, key := range sortedKeys(obj) {
		switch v := obj[key].(type) {
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				blocks = append(blocks, trimmed)
			}
		default:
			if text := stringValue(v); text != "" {
				blocks = append(blocks, fmt.Sprintf("%s: %s", key, text))
			}
		}
	}
	return strings.Join(blocks, "\n\n")
}

// lookupKey finds a value by any of the given key names, case-insensitively.
// Earlier names take priority.
func lookupKey(obj map[string]interface{}, names ...string) (interface{}, string) {
	for _, name := range names {
		for key, value := range obj {
			if strings.EqualFold(strings.TrimSpace(key), name) {
				return value, key
			}
		}
	}
	return nil, ""
}

func stringValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
