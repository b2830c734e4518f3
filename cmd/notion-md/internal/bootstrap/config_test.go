package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	notionmd "github.com/mikecat1024/notion-to-markdown"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NOTION_TOKEN", "")

	cfg, err := LoadConfig(viper.New(), Options{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := notionmd.DefaultConfig()
	if cfg.Notion.BaseURL != want.Notion.BaseURL || cfg.Notion.PageSize != want.Notion.PageSize {
		t.Fatalf("expected notion defaults, got %+v", cfg.Notion)
	}
	if cfg.Notion.RetryInterval != 500*time.Millisecond {
		t.Fatalf("expected default retry interval, got %s", cfg.Notion.RetryInterval)
	}
	if cfg.Export.Format != "markdown" || !cfg.Export.FrontMatter {
		t.Fatalf("expected export defaults, got %+v", cfg.Export)
	}
}

func TestLoadConfigFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "notion-md.yaml", `
notion:
  page_size: 50
  retry_interval: 2s
render:
  child_page_link_target: markdown_file
export:
  format: html
`)
	t.Setenv("NOTION_TOKEN", "from-env")
	t.Setenv("NOTION_MD_RENDER_TABLE_WIDTH", "east_asian")

	cfg, err := LoadConfig(viper.New(), Options{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Notion.Token != "from-env" {
		t.Fatalf("expected token from NOTION_TOKEN, got %q", cfg.Notion.Token)
	}
	if cfg.Notion.PageSize != 50 || cfg.Notion.RetryInterval != 2*time.Second {
		t.Fatalf("expected file values, got %+v", cfg.Notion)
	}
	if cfg.Render.ChildPageLinkTarget != "markdown_file" || cfg.Render.TableWidth != "east_asian" {
		t.Fatalf("unexpected render config %+v", cfg.Render)
	}
	if cfg.Export.Format != "html" {
		t.Fatalf("expected html format, got %q", cfg.Export.Format)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("NOTION_TOKEN", "")
	os.Unsetenv("NOTION_TOKEN")
	writeFile(t, dir, ".env", "NOTION_TOKEN=from-dotenv\n")

	cfg, err := LoadConfig(viper.New(), Options{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Notion.Token != "from-dotenv" {
		t.Fatalf("expected token from .env, got %q", cfg.Notion.Token)
	}
}

func TestLoadConfigMissingExplicitFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := LoadConfig(viper.New(), Options{EnvFile: "missing.env"}); err == nil {
		t.Fatal("expected error for missing explicit env file")
	}
	if _, err := LoadConfig(viper.New(), Options{ConfigFile: "missing.yaml"}); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestBuildModuleRequiresTokenForAPI(t *testing.T) {
	cfg := notionmd.DefaultConfig()
	cfg.Logging.Provider = "none"

	if _, err := BuildModule(cfg, true); !errors.Is(err, notionmd.ErrNotionTokenRequired) {
		t.Fatalf("expected ErrNotionTokenRequired, got %v", err)
	}

	module, err := BuildModule(cfg, false)
	if err != nil {
		t.Fatalf("BuildModule offline: %v", err)
	}
	if module.Module == nil || module.Logger == nil {
		t.Fatal("expected module and logger")
	}
}
