package markdown

import (
	"strings"
	"testing"

	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

func TestFrontMatterRoundTrip(t *testing.T) {
	meta := interfaces.FrontMatter{
		Title:     "Weekly: Notes",
		NotionID:  "59833787-2cf9-4fdf-8782-e53db20768a5",
		SourceURL: "https://www.notion.so/598337872cf94fdf8782e53db20768a5",
	}

	out, err := WithFrontMatter(meta, []byte("# Weekly\n"))
	if err != nil {
		t.Fatalf("WithFrontMatter: %v", err)
	}
	if !strings.HasPrefix(string(out), "---\n") {
		t.Fatalf("expected front matter delimiter, got %q", string(out))
	}
	if strings.Contains(string(out), "last_edited_time") {
		t.Fatalf("empty fields should be omitted, got %q", string(out))
	}

	parsed, body, err := ParseFrontMatter(out)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if parsed.Title != meta.Title || parsed.NotionID != meta.NotionID || parsed.SourceURL != meta.SourceURL {
		t.Fatalf("front matter mismatch: %+v", parsed)
	}
	if !strings.Contains(string(body), "# Weekly") {
		t.Fatalf("expected body to survive, got %q", string(body))
	}
}

func TestParseFrontMatterWithoutHeader(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("plain body\n"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta.NotionID != "" || meta.Custom != nil {
		t.Fatalf("expected empty front matter, got %+v", meta)
	}
	if string(body) != "plain body\n" {
		t.Fatalf("unexpected body %q", string(body))
	}
}

func TestGoldmarkParser_RendersBlockOutput(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	source := strings.Join([]string{
		"# Heading",
		"- [x] done",
		"- ~~gone~~ <u>under</u>",
		"",
		"| a   | b   |",
		"| --- | --- |",
		"| cc  | d   |",
		"",
	}, "\n")

	out, err := parser.Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(out)
	for _, want := range []string{`<h1 id="heading">Heading</h1>`, `type="checkbox"`, "<del>gone</del>", "<u>under</u>", "<table>", "<td>cc</td>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in HTML output, got %q", want, got)
		}
	}
}

func TestGoldmarkParser_SafeModeDropsRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := parser.ParseWithOptions([]byte("<u>under</u>"), interfaces.ParseOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if strings.Contains(string(out), "<u>") {
		t.Fatalf("expected raw HTML to be omitted, got %q", string(out))
	}
}

func TestGoldmarkParser_ParseWithOptions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(html))
	}
}

func TestCollectExtensionsIgnoresUnknown(t *testing.T) {
	exts := collectExtensions([]string{"table", "TABLE", "nope", " tasklist "})
	if len(exts) != 2 {
		t.Fatalf("expected 2 extensions, got %d", len(exts))
	}
}

func TestStandaloneHTMLEscapesTitle(t *testing.T) {
	out := string(StandaloneHTML("R&D <notes>", []byte("<p>x</p>\n")))
	if !strings.Contains(out, "<title>R&amp;D &lt;notes&gt;</title>") {
		t.Fatalf("expected escaped title, got %q", out)
	}
	if !strings.Contains(out, "<body>\n<p>x</p>\n</body>") {
		t.Fatalf("expected body to be embedded, got %q", out)
	}
}
