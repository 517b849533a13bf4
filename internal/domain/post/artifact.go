package post

// ArtifactMetadata carries structured extras parsed from a provider response.
type ArtifactMetadata struct {
	Hashtags []string `json:"hashtags"`
}

// Artifact is the reconciled, storage-ready representation of one generated
// post. PostContent is always plain user-facing text; reconciliation
// guarantees it is never machine-readable JSON.
type Artifact struct {
	PostContent  string           `json:"post_content"`
	Format       Format           `json:"format_type"`
	Title        string           `json:"title,omitempty"`
	ImagePrompt  *string          `json:"image_prompt,omitempty"`
	ImagePrompts []string         `json:"image_prompts,omitempty"`
	Metadata     ArtifactMetadata `json:"metadata"`
}

// HasImagePrompt reports whether a usable single-image prompt is present.
func (a *Artifact) HasImagePrompt() bool {
	return a.ImagePrompt != nil && *a.ImagePrompt != ""
}
