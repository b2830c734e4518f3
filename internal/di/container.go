package di

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/afero"

	"github.com/mikecat1024/notion-to-markdown/internal/assembler"
	"github.com/mikecat1024/notion-to-markdown/internal/export"
	"github.com/mikecat1024/notion-to-markdown/internal/logging"
	"github.com/mikecat1024/notion-to-markdown/internal/logging/console"
	"github.com/mikecat1024/notion-to-markdown/internal/logging/gologger"
	"github.com/mikecat1024/notion-to-markdown/internal/notionapi"
	"github.com/mikecat1024/notion-to-markdown/internal/render"
	"github.com/mikecat1024/notion-to-markdown/internal/runtimeconfig"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

// ErrNoSource is returned by accessors that need Notion access when the
// container has neither a token nor an injected lister.
var ErrNoSource = errors.New("di: notion token or block lister is required")

// Container wires the client, assembler, renderer and exporter from a Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	httpClient     *http.Client
	fs             afero.Fs
	lister         assembler.Lister
	pages          interfaces.PageRetriever

	client     *notionapi.Client
	assembler  *assembler.Assembler
	renderOpts render.Options
	exporter   *export.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) { c.loggerProvider = provider }
}

// WithHTTPClient sets the base HTTP client of the Notion client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) { c.httpClient = client }
}

// WithFilesystem sets where exports are written. Defaults to the OS.
func WithFilesystem(fs afero.Fs) Option {
	return func(c *Container) { c.fs = fs }
}

// WithLister replaces the Notion client as the source of block children.
func WithLister(lister assembler.Lister) Option {
	return func(c *Container) { c.lister = lister }
}

// WithPageRetriever replaces the Notion client as the source of page titles.
func WithPageRetriever(pages interfaces.PageRetriever) Option {
	return func(c *Container) { c.pages = pages }
}

// NewContainer validates cfg and builds every service it can. Without a token
// or lister only offline rendering is available.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	renderOpts, err := renderOptions(cfg.Render)
	if err != nil {
		return nil, err
	}
	renderOpts.Logger = logging.RenderLogger(c.loggerProvider)
	c.renderOpts = renderOpts

	if err := c.configureSource(); err != nil {
		return nil, err
	}
	if c.lister != nil {
		c.assembler = assembler.New(c.lister,
			assembler.WithRetryInterval(cfg.Notion.RetryInterval),
			assembler.WithMaxRetries(cfg.Notion.MaxRetries),
			assembler.WithLogger(logging.AssemblerLogger(c.loggerProvider)),
		)
		c.exporter = export.NewService(c.assembler, c.fs,
			export.WithPageRetriever(c.pages),
			export.WithRenderOptions(c.renderOpts),
			export.WithLogger(logging.ExportLogger(c.loggerProvider)),
		)
	}

	logging.ModuleLogger(c.loggerProvider, "notionmd.di").Debug("container.configured",
		"online", c.assembler != nil,
		"client", c.client != nil,
	)
	return c, nil
}

func (c *Container) configureSource() error {
	if c.lister != nil || strings.TrimSpace(c.Config.Notion.Token) == "" {
		return nil
	}
	clientOpts := []notionapi.Option{
		notionapi.WithBaseURL(c.Config.Notion.BaseURL),
		notionapi.WithVersion(c.Config.Notion.Version),
		notionapi.WithTimeout(c.Config.Notion.Timeout),
		notionapi.WithLogger(logging.ClientLogger(c.loggerProvider)),
	}
	if c.httpClient != nil {
		clientOpts = append(clientOpts, notionapi.WithHTTPClient(c.httpClient))
	}
	client, err := notionapi.New(c.Config.Notion.Token, clientOpts...)
	if err != nil {
		return err
	}
	c.client = client
	c.lister = client
	if c.pages == nil {
		c.pages = client
	}
	return nil
}

// LoggerProvider returns the provider every service logs through.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Filesystem returns the export destination filesystem.
func (c *Container) Filesystem() afero.Fs {
	return c.fs
}

// Client returns the Notion client, or nil when a lister was injected or no
// token is configured.
func (c *Container) Client() *notionapi.Client {
	return c.client
}

// Assembler returns the tree assembler.
func (c *Container) Assembler() (*assembler.Assembler, error) {
	if c.assembler == nil {
		return nil, ErrNoSource
	}
	return c.assembler, nil
}

// Exporter returns the export service.
func (c *Container) Exporter() (*export.Service, error) {
	if c.exporter == nil {
		return nil, ErrNoSource
	}
	return c.exporter, nil
}

// RenderOptions returns the renderer options derived from Config.Render.
func (c *Container) RenderOptions() render.Options {
	return c.renderOpts
}

// Renderer returns a renderer configured from Config.Render.
func (c *Container) Renderer() *render.Renderer {
	return render.New(render.WithOptions(c.renderOpts))
}

func renderOptions(cfg runtimeconfig.RenderConfig) (render.Options, error) {
	opts := render.DefaultOptions()
	var err error
	if opts.ChildPageLinkTarget, err = render.ParseLinkTarget(cfg.ChildPageLinkTarget); err != nil {
		return opts, err
	}
	if opts.ChildDatabaseLinkTarget, err = render.ParseLinkTarget(cfg.ChildDatabaseLinkTarget); err != nil {
		return opts, err
	}
	if opts.TableWidth, err = render.ParseWidthMode(cfg.TableWidth); err != nil {
		return opts, err
	}
	if origin := strings.TrimRight(strings.TrimSpace(cfg.Origin), "/"); origin != "" {
		opts.Origin = origin
	}
	return opts, nil
}

func newLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level, ok := console.ParseLevel(cfg.Level)
		if !ok {
			level = console.LevelInfo
		}
		return console.NewProvider(console.Options{MinLevel: &level, Color: true}), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("di: configure go-logger: %w", err)
		}
		return provider, nil
	default:
		return noopProvider{}, nil
	}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
