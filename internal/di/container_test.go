package di_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
	"github.com/mikecat1024/notion-to-markdown/internal/di"
	"github.com/mikecat1024/notion-to-markdown/internal/render"
	"github.com/mikecat1024/notion-to-markdown/internal/runtimeconfig"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

type emptyLister struct{}

func (emptyLister) ListChildren(context.Context, string, string, int) (*blocks.ChildrenPage, error) {
	return &blocks.ChildrenPage{}, nil
}

func TestContainerLogsThroughInjectedProvider(t *testing.T) {
	rec := newRecordingProvider()

	if _, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithLoggerProvider(rec), di.WithLister(emptyLister{})); err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	entry := rec.find("container.configured")
	if entry == nil {
		t.Fatalf("expected container.configured log entry, got %#v", rec.entries)
	}
	if got := entry.fields["module"]; got != "notionmd.di" {
		t.Fatalf("expected module field notionmd.di, got %v", got)
	}
	if got := entry.fields["online"]; got != true {
		t.Fatalf("expected online=true, got %v", got)
	}
}

func TestContainerWithoutTokenIsOffline(t *testing.T) {
	c, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithLoggerProvider(newRecordingProvider()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if c.Client() != nil {
		t.Fatal("expected no client without a token")
	}
	if _, err := c.Exporter(); !errors.Is(err, di.ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
	if _, err := c.Assembler(); !errors.Is(err, di.ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
	if c.Renderer() == nil {
		t.Fatal("expected renderer to be available offline")
	}
}

func TestContainerBuildsClientFromToken(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Notion.Token = "secret"
	cfg.Logging.Provider = "none"

	fs := afero.NewMemMapFs()
	c, err := di.NewContainer(cfg, di.WithFilesystem(fs))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if c.Client() == nil {
		t.Fatal("expected client to be built")
	}
	if _, err := c.Exporter(); err != nil {
		t.Fatalf("expected exporter, got %v", err)
	}
	if c.Filesystem() != fs {
		t.Fatal("expected injected filesystem")
	}
}

func TestContainerRenderOptionsFromConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Render.ChildPageLinkTarget = "markdown_file"
	cfg.Render.TableWidth = "east_asian"
	cfg.Render.Origin = "https://notion.example.com/"

	c, err := di.NewContainer(cfg, di.WithLoggerProvider(newRecordingProvider()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	opts := c.RenderOptions()
	if opts.ChildPageLinkTarget != render.MarkdownFile {
		t.Fatalf("expected markdown file links, got %s", opts.ChildPageLinkTarget)
	}
	if opts.ChildDatabaseLinkTarget != render.RemoteOrigin {
		t.Fatalf("expected remote database links, got %s", opts.ChildDatabaseLinkTarget)
	}
	if opts.TableWidth != render.WidthEastAsian {
		t.Fatalf("expected east asian widths, got %s", opts.TableWidth)
	}
	if opts.Origin != "https://notion.example.com" {
		t.Fatalf("unexpected origin %q", opts.Origin)
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Notion.PageSize = 500
	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrPageSizeInvalid) {
		t.Fatalf("expected ErrPageSizeInvalid, got %v", err)
	}
}

type recordingProvider struct {
	entries []recordedEntry
}

type recordedEntry struct {
	level  string
	msg    string
	fields map[string]any
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{entries: []recordedEntry{}}
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	return &recordingLogger{
		provider: p,
		fields: map[string]any{
			"logger": name,
		},
	}
}

func (p *recordingProvider) record(entry recordedEntry) {
	p.entries = append(p.entries, entry)
}

func (p *recordingProvider) find(msg string) *recordedEntry {
	for i := range p.entries {
		if p.entries[i].msg == msg {
			return &p.entries[i]
		}
	}
	return nil
}

type recordingLogger struct {
	provider *recordingProvider
	fields   map[string]any
}

var _ interfaces.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) Trace(msg string, args ...any) { l.log("TRACE", msg, args...) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args...) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args...) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args...) }
func (l *recordingLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args...) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.log("FATAL", msg, args...) }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	for key, value := range l.fields {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return &recordingLogger{
		provider: l.provider,
		fields:   merged,
	}
}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return &recordingLogger{
		provider: l.provider,
		fields:   cloneFields(l.fields),
	}
}

func (l *recordingLogger) log(level, msg string, args ...any) {
	fields := cloneFields(l.fields)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			break
		}
		key, _ := args[i].(string)
		if key == "" {
			continue
		}
		fields[key] = args[i+1]
	}
	l.provider.record(recordedEntry{
		level:  level,
		msg:    msg,
		fields: fields,
	})
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}
