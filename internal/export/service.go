// Package export materializes Notion pages, renders them and writes the
// result to a filesystem.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/spf13/afero"

	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
	"github.com/mikecat1024/notion-to-markdown/internal/logging"
	"github.com/mikecat1024/notion-to-markdown/internal/markdown"
	"github.com/mikecat1024/notion-to-markdown/internal/render"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

var (
	// ErrPageIDRequired is returned when a request names no page.
	ErrPageIDRequired = errors.New("export: page id is required")
	// ErrUnsupportedFormat is returned for formats other than markdown and html.
	ErrUnsupportedFormat = errors.New("export: unsupported format")
	// ErrFileExists is returned when the destination exists and was not
	// produced by exporting the same page.
	ErrFileExists = errors.New("export: destination exists and belongs to another document")
)

// Materializer assembles the block tree below a page.
type Materializer interface {
	Materialize(ctx context.Context, rootID string, pageSize int) ([]blocks.Block, error)
}

// Request describes one export.
type Request struct {
	PageID string
	// OutputPath overrides the destination of the root page. Child pages are
	// written next to it.
	OutputPath  string
	OutputDir   string
	Format      string
	PageSize    int
	FrontMatter bool
	Recursive   bool
	Overwrite   bool
}

// File describes one written document.
type File struct {
	PageID string
	Title  string
	Path   string
	Bytes  int
}

// Result lists every written document, root first.
type Result struct {
	Files []File
}

// Service exports pages.
type Service struct {
	tree       Materializer
	pages      interfaces.PageRetriever
	fs         afero.Fs
	renderOpts render.Options
	html       interfaces.MarkdownParser
	logger     interfaces.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithPageRetriever enables page titles and source URLs in names and front
// matter. Without it pages are named after their id.
func WithPageRetriever(pages interfaces.PageRetriever) Option {
	return func(s *Service) { s.pages = pages }
}

// WithRenderOptions sets the renderer options used for every page.
func WithRenderOptions(opts render.Options) Option {
	return func(s *Service) { s.renderOpts = opts }
}

// WithHTMLParser overrides the Markdown to HTML converter.
func WithHTMLParser(parser interfaces.MarkdownParser) Option {
	return func(s *Service) {
		if parser != nil {
			s.html = parser
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds an export service writing to fs.
func NewService(tree Materializer, fs afero.Fs, opts ...Option) *Service {
	s := &Service{
		tree:       tree,
		fs:         fs,
		renderOpts: render.DefaultOptions(),
		html:       markdown.NewGoldmarkParser(interfaces.ParseOptions{}),
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	return s
}

// Render materializes pageID and returns its Markdown without writing it.
func (s *Service) Render(ctx context.Context, pageID string, pageSize int) (string, error) {
	if strings.TrimSpace(pageID) == "" {
		return "", ErrPageIDRequired
	}
	tree, err := s.tree.Materialize(ctx, pageID, pageSize)
	if err != nil {
		return "", err
	}
	return render.New(render.WithOptions(s.renderOpts)).Blocks(tree), nil
}

// Export materializes, renders and writes the requested page, and with
// Recursive set every child page below it. A page is written only once its
// whole tree rendered; a failure stops the export.
func (s *Service) Export(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.PageID) == "" {
		return nil, ErrPageIDRequired
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = FormatMarkdown
	}
	if format != FormatMarkdown && format != FormatHTML {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, req.Format)
	}
	req.Format = format

	j := &job{
		service: s,
		req:     req,
		visited: map[string]struct{}{},
		files:   map[string]string{},
		taken:   map[string]struct{}{},
		result:  &Result{},
	}
	opts := s.renderOpts
	if req.Recursive {
		opts.ChildPageLinkTarget = render.MarkdownFile
		opts.ChildPageFile = j.linkedFile
	}
	opts.Logger = s.logger
	j.renderer = render.New(render.WithOptions(opts))
	if err := j.exportRoot(ctx); err != nil {
		return j.result, err
	}
	return j.result, nil
}

type job struct {
	service  *Service
	req      Request
	renderer *render.Renderer
	visited  map[string]struct{}
	// files maps compact page ids to the file name each page is written
	// under; taken holds every reserved path.
	files  map[string]string
	taken  map[string]struct{}
	result *Result
}

type pending struct {
	id    string
	title string
	path  string
}

func (j *job) exportRoot(ctx context.Context) error {
	root := pending{id: j.req.PageID, path: j.req.OutputPath}
	queue := []pending{root}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if _, seen := j.visited[next.id]; seen {
			continue
		}
		j.visited[next.id] = struct{}{}

		children, err := j.exportPage(ctx, next)
		if err != nil {
			return err
		}
		if j.req.Recursive {
			queue = append(queue, children...)
		}
	}
	return nil
}

func (j *job) exportPage(ctx context.Context, p pending) ([]pending, error) {
	s := j.service
	meta := interfaces.Page{ID: p.id, Title: p.title}
	if s.pages != nil {
		page, err := s.pages.RetrievePage(ctx, p.id)
		if err != nil {
			return nil, fmt.Errorf("retrieve page %s: %w", p.id, err)
		}
		meta = *page
		if meta.ID == "" {
			meta.ID = p.id
		}
		if meta.Title == "" {
			meta.Title = p.title
		}
	}

	tree, err := s.tree.Materialize(ctx, p.id, j.req.PageSize)
	if err != nil {
		return nil, err
	}

	path := p.path
	if path == "" {
		path = filepath.Join(j.outputDir(), j.fileName(meta))
	}
	j.reserve(p.id, path)

	// Child pages get their paths before the parent renders so links and
	// files agree.
	var children []pending
	if j.req.Recursive {
		blocks.NewDocument(tree).Walk(func(b blocks.Block) bool {
			if child, ok := b.(*blocks.ChildPage); ok {
				children = append(children, pending{
					id:    child.ID(),
					title: child.Content.Title,
					path:  j.childPath(child.ID(), child.Content.Title),
				})
			}
			return true
		})
	}
	body := j.renderer.Blocks(tree)

	logger := logging.WithExportContext(s.logger, p.id, path, j.req.Format)

	content, err := j.encode(meta, body)
	if err != nil {
		return nil, err
	}
	if err := j.write(path, meta.ID, content); err != nil {
		return nil, err
	}

	j.result.Files = append(j.result.Files, File{PageID: p.id, Title: meta.Title, Path: path, Bytes: len(content)})
	logger.Info("export.page.written", "bytes", len(content), "blocks", len(tree))
	return children, nil
}

func (j *job) reserve(pageID, path string) {
	id := compactID(pageID)
	if _, ok := j.files[id]; !ok {
		j.files[id] = filepath.Base(path)
	}
	j.taken[path] = struct{}{}
}

// childPath names a child page after its escaped title. Empty titles and
// names another page already holds get the compact page id appended.
func (j *job) childPath(pageID, title string) string {
	dir := j.outputDir()
	if name, ok := j.files[compactID(pageID)]; ok {
		return filepath.Join(dir, name)
	}
	stem := render.EscapeTitle(title)
	path := filepath.Join(dir, stem+j.ext())
	if _, clash := j.taken[path]; stem == "" || clash {
		if stem != "" {
			stem += "_"
		}
		path = filepath.Join(dir, stem+compactID(pageID)+j.ext())
	}
	j.reserve(pageID, path)
	return path
}

func (j *job) linkedFile(pageID string) (string, bool) {
	name, ok := j.files[compactID(pageID)]
	return name, ok
}

func (j *job) outputDir() string {
	switch {
	case j.req.OutputPath != "":
		return filepath.Dir(j.req.OutputPath)
	case j.req.OutputDir != "":
		return j.req.OutputDir
	default:
		return "."
	}
}

func (j *job) ext() string {
	if j.req.Format == FormatHTML {
		return ".html"
	}
	return ".md"
}

// fileName names the root page by its slug, or its compact id when the
// title has none.
func (j *job) fileName(meta interfaces.Page) string {
	if meta.Title != "" {
		if name, err := slug.Normalize(meta.Title); err == nil && name != "" {
			return name + j.ext()
		}
	}
	return compactID(meta.ID) + j.ext()
}

func (j *job) encode(meta interfaces.Page, body string) ([]byte, error) {
	s := j.service
	if j.req.Format == FormatHTML {
		fragment, err := s.html.Parse([]byte(body))
		if err != nil {
			return nil, fmt.Errorf("render html for %s: %w", meta.ID, err)
		}
		title := meta.Title
		if title == "" {
			title = meta.ID
		}
		marked := append([]byte(htmlIDMarker(meta.ID)), fragment...)
		return markdown.StandaloneHTML(title, marked), nil
	}

	if !j.req.FrontMatter {
		return []byte(body), nil
	}
	source := meta.URL
	if source == "" {
		source = render.PageURL(s.renderOpts.Origin, meta.ID)
	}
	return markdown.WithFrontMatter(interfaces.FrontMatter{
		Title:          meta.Title,
		NotionID:       meta.ID,
		SourceURL:      source,
		LastEditedTime: meta.LastEditedTime,
	}, []byte(body))
}

// write refuses to replace a file exported from another page unless
// Overwrite is set. Files carrying this page's notion_id are replaced.
func (j *job) write(path, pageID string, content []byte) error {
	fs := j.service.fs
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if exists && !j.req.Overwrite {
		existing, err := afero.ReadFile(fs, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if !exportedFrom(existing, pageID, j.req.Format) {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fs, path, content, os.FileMode(0o644)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// exportedFrom reports whether an existing document was written for pageID.
// Markdown carries the id in front matter, HTML in a leading comment.
func exportedFrom(existing []byte, pageID, format string) bool {
	if format == FormatHTML {
		return bytes.Contains(existing, []byte(htmlIDMarker(pageID)))
	}
	meta, _, err := markdown.ParseFrontMatter(existing)
	return err == nil && sameID(meta.NotionID, pageID)
}

func htmlIDMarker(pageID string) string {
	return "<!-- notion_id: " + pageID + " -->\n"
}

func sameID(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return compactID(a) == compactID(b)
}

func compactID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}
