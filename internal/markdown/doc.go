// Package markdown post-processes rendered Markdown: goldmark based HTML
// conversion for the html export format, and YAML front matter written above
// exported documents and read back from existing files.
package markdown
