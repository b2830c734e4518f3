package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

const frontMatterDelimiter = "---\n"

// ParseFrontMatter splits source into its front matter and Markdown body.
// Sources without front matter yield an empty FrontMatter and the whole
// source as body.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta interfaces.FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if len(meta.Custom) == 0 {
		meta.Custom = nil
	}
	return meta, body, nil
}

// WithFrontMatter prefixes body with a YAML front matter block.
func WithFrontMatter(meta interfaces.FrontMatter, body []byte) ([]byte, error) {
	encoded, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(encoded) + len(body) + 2*len(frontMatterDelimiter) + 1)
	buf.WriteString(frontMatterDelimiter)
	buf.Write(encoded)
	buf.WriteString(frontMatterDelimiter)
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}
