package interfaces

// MarkdownParser converts Markdown into HTML.
type MarkdownParser interface {
	// Parse converts Markdown using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown to HTML conversion. Option names stay
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// FrontMatter is the metadata header written above exported documents.
// NotionID identifies the page a file was exported from so later exports can
// tell their own files apart from unrelated ones.
type FrontMatter struct {
	Title          string         `yaml:"title,omitempty" json:"title,omitempty"`
	NotionID       string         `yaml:"notion_id,omitempty" json:"notion_id,omitempty"`
	SourceURL      string         `yaml:"source_url,omitempty" json:"source_url,omitempty"`
	LastEditedTime string         `yaml:"last_edited_time,omitempty" json:"last_edited_time,omitempty"`
	Custom         map[string]any `yaml:",inline" json:"custom,omitempty"`
}
