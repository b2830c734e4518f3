package notionmd_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"

	notionmd "github.com/mikecat1024/notion-to-markdown"
	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
)

const pageID = "59833787-2cf9-4fdf-8782-e53db20768a5"

type mapLister map[string]string

func (m mapLister) ListChildren(_ context.Context, blockID, _ string, _ int) (*blocks.ChildrenPage, error) {
	payload, ok := m[blockID]
	if !ok {
		return &blocks.ChildrenPage{}, nil
	}
	list, err := blocks.DecodeList([]byte(payload))
	if err != nil {
		return nil, err
	}
	return &blocks.ChildrenPage{Results: list}, nil
}

func newModule(t *testing.T, fs afero.Fs) *notionmd.Module {
	t.Helper()
	cfg := notionmd.DefaultConfig()
	cfg.Logging.Provider = "none"
	lister := mapLister{
		pageID: `[
			{"id":"h","type":"heading_1","heading_1":{"rich_text":[{"type":"text","plain_text":"Plan"}]}},
			{"id":"li","type":"bulleted_list_item","has_children":true,"bulleted_list_item":{"rich_text":[{"type":"text","plain_text":"first"}]}}
		]`,
		"li": `[{"id":"n","type":"bulleted_list_item","bulleted_list_item":{"rich_text":[{"type":"text","plain_text":"nested"}]}}]`,
	}
	m, err := notionmd.New(cfg, notionmd.WithLister(lister), notionmd.WithFilesystem(fs))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestModuleRenderAcceptsURL(t *testing.T) {
	m := newModule(t, afero.NewMemMapFs())

	out, err := m.Render(context.Background(), "https://www.notion.so/Plan-598337872cf94fdf8782e53db20768a5")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "# Plan\n- first\n  - nested\n"
	if out != want {
		t.Fatalf("unexpected markdown:\n%q\nwant\n%q", out, want)
	}
}

func TestModuleRenderRejectsInvalidID(t *testing.T) {
	m := newModule(t, afero.NewMemMapFs())
	if _, err := m.Render(context.Background(), "nope"); !errors.Is(err, notionmd.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestModuleExportWritesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := newModule(t, fs)

	result, err := m.Export(context.Background(), notionmd.ExportRequest{
		PageID:     "598337872cf94fdf8782e53db20768a5",
		OutputPath: "plan.md",
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].PageID != pageID {
		t.Fatalf("unexpected result %+v", result)
	}
	data, err := afero.ReadFile(fs, "plan.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "# Plan\n- first\n  - nested\n" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestModuleWithoutSourceIsOffline(t *testing.T) {
	cfg := notionmd.DefaultConfig()
	cfg.Logging.Provider = "none"
	m, err := notionmd.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.Render(context.Background(), pageID); !errors.Is(err, notionmd.ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
	if _, err := m.Export(context.Background(), notionmd.ExportRequest{PageID: pageID}); !errors.Is(err, notionmd.ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}

func TestRenderJSON(t *testing.T) {
	dump := `[
		{"id":"q","type":"quote","has_children":true,"quote":{"rich_text":[{"type":"text","plain_text":"said"}]},
		 "children":[{"id":"p","type":"paragraph","paragraph":{"rich_text":[{"type":"text","plain_text":"more"}]}}]},
		{"id":"d","type":"divider","divider":{}}
	]`
	out, err := notionmd.RenderJSON([]byte(dump))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if out != "> said\n> more\n***\n" {
		t.Fatalf("unexpected markdown %q", out)
	}
}

func TestConfigValidateAliases(t *testing.T) {
	cfg := notionmd.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if err := cfg.ValidateForAPI(); !errors.Is(err, notionmd.ErrNotionTokenRequired) {
		t.Fatalf("expected ErrNotionTokenRequired, got %v", err)
	}

	cfg.Render.TableWidth = "proportional"
	if err := cfg.Validate(); !errors.Is(err, notionmd.ErrTableWidthInvalid) {
		t.Fatalf("expected ErrTableWidthInvalid, got %v", err)
	}
}
