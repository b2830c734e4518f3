// Package notionmd converts Notion block trees into Markdown.
//
// A Module assembles the children of a page through the Notion API, renders
// them and optionally writes them to files. RenderJSON renders a saved
// children listing without network access.
package notionmd

import (
	"context"
	"net/http"

	"github.com/spf13/afero"

	"github.com/mikecat1024/notion-to-markdown/internal/assembler"
	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
	"github.com/mikecat1024/notion-to-markdown/internal/di"
	"github.com/mikecat1024/notion-to-markdown/internal/export"
	"github.com/mikecat1024/notion-to-markdown/internal/notionapi"
	"github.com/mikecat1024/notion-to-markdown/internal/render"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

type (
	Block         = blocks.Block
	Document      = blocks.Document
	ExportRequest = export.Request
	ExportResult  = export.Result
	ExportedFile  = export.File
	RenderOptions = render.Options
	RenderOption  = render.Option
	LinkTarget    = render.LinkTarget
	WidthMode     = render.WidthMode
	Lister        = assembler.Lister
	Option        = di.Option
)

const (
	RemoteOrigin     = render.RemoteOrigin
	MarkdownFile     = render.MarkdownFile
	WidthASCIIDouble = render.WidthASCIIDouble
	WidthEastAsian   = render.WidthEastAsian
	FormatMarkdown   = export.FormatMarkdown
	FormatHTML       = export.FormatHTML
)

var (
	ErrNoSource     = di.ErrNoSource
	ErrRateLimited  = interfaces.ErrRateLimited
	ErrInvalidID    = notionapi.ErrInvalidID
	ErrFileExists   = export.ErrFileExists
	ErrPageRequired = export.ErrPageIDRequired
)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithHTTPClient sets the base HTTP client used to reach Notion.
func WithHTTPClient(client *http.Client) Option {
	return di.WithHTTPClient(client)
}

// WithFilesystem sets where Export writes.
func WithFilesystem(fs afero.Fs) Option {
	return di.WithFilesystem(fs)
}

// WithLister replaces the Notion client as the source of block children.
func WithLister(lister Lister) Option {
	return di.WithLister(lister)
}

// WithPageRetriever replaces the Notion client as the source of page titles.
func WithPageRetriever(pages interfaces.PageRetriever) Option {
	return di.WithPageRetriever(pages)
}

// Module is the converter façade.
type Module struct {
	container *di.Container
}

// New builds a module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Materialize fetches the full block tree below pageID.
func (m *Module) Materialize(ctx context.Context, pageID string) ([]Block, error) {
	asm, err := m.container.Assembler()
	if err != nil {
		return nil, err
	}
	id, err := notionapi.NormalizeID(pageID)
	if err != nil {
		return nil, err
	}
	return asm.Materialize(ctx, id, m.container.Config.Notion.PageSize)
}

// Render fetches pageID and returns its Markdown. pageID may be a dashed or
// undashed id or a page URL.
func (m *Module) Render(ctx context.Context, pageID string) (string, error) {
	tree, err := m.Materialize(ctx, pageID)
	if err != nil {
		return "", err
	}
	return m.RenderBlocks(tree), nil
}

// RenderBlocks renders already assembled top-level blocks.
func (m *Module) RenderBlocks(list []Block) string {
	return m.container.Renderer().Blocks(list)
}

// Export fetches, renders and writes req.PageID.
func (m *Module) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	svc, err := m.container.Exporter()
	if err != nil {
		return nil, err
	}
	id, err := notionapi.NormalizeID(req.PageID)
	if err != nil {
		return nil, err
	}
	req.PageID = id
	if req.PageSize == 0 {
		req.PageSize = m.container.Config.Notion.PageSize
	}
	return svc.Export(ctx, req)
}

// RenderJSON renders a saved children listing, either a JSON array of blocks
// with nested children under "children" or a list response envelope.
func RenderJSON(data []byte, opts ...RenderOption) (string, error) {
	list, err := blocks.DecodeDump(data)
	if err != nil {
		return "", err
	}
	return render.New(opts...).Blocks(list), nil
}
