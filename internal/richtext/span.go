package richtext

// Kind identifies the rich text variant reported by the Notion API.
type Kind string

const (
	KindText     Kind = "text"
	KindMention  Kind = "mention"
	KindEquation Kind = "equation"
)

// Annotations carries the independent inline style flags of a span.
type Annotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color,omitempty"`
}

// Span is a single run of annotated inline text.
type Span struct {
	Type        Kind        `json:"type"`
	PlainText   string      `json:"plain_text"`
	Href        *string     `json:"href,omitempty"`
	Annotations Annotations `json:"annotations"`
	Text        *Text       `json:"text,omitempty"`
	Mention     *Mention    `json:"mention,omitempty"`
	Equation    *Equation   `json:"equation,omitempty"`
}

// Text is the payload of a text span. Content mirrors PlainText for most
// spans; the API only diverges for links, where Link carries the target.
type Text struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// Link is the inline link object attached to text payloads.
type Link struct {
	URL string `json:"url"`
}

// Mention is the payload of a mention span. Only user and link mentions
// expose a display title of their own; every other mention kind renders its
// plain text.
type Mention struct {
	Type        string       `json:"type"`
	User        *UserMention `json:"user,omitempty"`
	LinkMention *LinkMention `json:"link_mention,omitempty"`
}

// UserMention references a workspace member.
type UserMention struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// LinkMention references an external document by title.
type LinkMention struct {
	Href  string `json:"href,omitempty"`
	Title string `json:"title"`
}

// Equation is the payload of an inline equation span.
type Equation struct {
	Expression string `json:"expression"`
}

// NewText builds a plain text span, mostly useful for tests and synthetic
// content.
func NewText(content string, annotations Annotations) Span {
	return Span{
		Type:        KindText,
		PlainText:   content,
		Annotations: annotations,
		Text:        &Text{Content: content},
	}
}

// WithHref returns a copy of the span linked to url.
func (s Span) WithHref(url string) Span {
	s.Href = &url
	return s
}

// Content returns the display content the span renders with: the mention's
// title for user and link mentions, the plain text otherwise.
func (s Span) Content() string {
	if s.Type == KindMention && s.Mention != nil {
		switch {
		case s.Mention.User != nil && s.Mention.User.Name != "":
			return s.Mention.User.Name
		case s.Mention.LinkMention != nil && s.Mention.LinkMention.Title != "":
			return s.Mention.LinkMention.Title
		}
	}
	if s.PlainText == "" && s.Text != nil {
		return s.Text.Content
	}
	return s.PlainText
}

// URL returns the link target of the span, if any.
func (s Span) URL() (string, bool) {
	if s.Href != nil && *s.Href != "" {
		return *s.Href, true
	}
	if s.Text != nil && s.Text.Link != nil && s.Text.Link.URL != "" {
		return s.Text.Link.URL, true
	}
	return "", false
}

// PlainText concatenates the raw text of spans without applying markup.
func PlainText(spans []Span) string {
	switch len(spans) {
	case 0:
		return ""
	case 1:
		return spans[0].Content()
	}
	size := 0
	for _, span := range spans {
		size += len(span.PlainText)
	}
	buf := make([]byte, 0, size)
	for _, span := range spans {
		buf = append(buf, span.Content()...)
	}
	return string(buf)
}
