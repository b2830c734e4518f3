package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotionTokenRequired    = errors.New("notionmd config: notion token is required")
	ErrNotionBaseURLRequired  = errors.New("notionmd config: notion base url is required")
	ErrPageSizeInvalid        = errors.New("notionmd config: page size must be between 0 and 100")
	ErrRetryIntervalInvalid   = errors.New("notionmd config: retry interval must be positive")
	ErrTimeoutInvalid         = errors.New("notionmd config: timeout must be zero or positive")
	ErrLinkTargetInvalid      = errors.New("notionmd config: link target is invalid")
	ErrTableWidthInvalid      = errors.New("notionmd config: table width mode is invalid")
	ErrExportFormatInvalid    = errors.New("notionmd config: export format is invalid")
	ErrOutputDirRequired      = errors.New("notionmd config: export output directory is required")
	ErrLoggingProviderUnknown = errors.New("notionmd config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("notionmd config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("notionmd config: logging format is invalid")
)

// Config aggregates everything needed to fetch, render and write a page.
// Field tags follow the keys accepted in config files and NOTION_MD_*
// environment variables.
type Config struct {
	Notion  NotionConfig  `mapstructure:"notion"`
	Render  RenderConfig  `mapstructure:"render"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// NotionConfig configures the API client and the tree assembler.
type NotionConfig struct {
	Token         string        `mapstructure:"token"`
	BaseURL       string        `mapstructure:"base_url"`
	Version       string        `mapstructure:"version"`
	PageSize      int           `mapstructure:"page_size"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	// MaxRetries caps retries of a rate-limited request. Zero retries until
	// the command times out.
	MaxRetries uint          `mapstructure:"max_retries"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// RenderConfig mirrors render.Options in configuration friendly types.
type RenderConfig struct {
	ChildPageLinkTarget     string `mapstructure:"child_page_link_target"`
	ChildDatabaseLinkTarget string `mapstructure:"child_database_link_target"`
	Origin                  string `mapstructure:"origin"`
	TableWidth              string `mapstructure:"table_width"`
}

// ExportConfig controls how rendered documents are written.
type ExportConfig struct {
	OutputDir   string `mapstructure:"output_dir"`
	Format      string `mapstructure:"format"`
	FrontMatter bool   `mapstructure:"front_matter"`
	Recursive   bool   `mapstructure:"recursive"`
	Overwrite   bool   `mapstructure:"overwrite"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultConfig returns defaults matching the public Notion API. The token is
// left empty and must be supplied.
func DefaultConfig() Config {
	return Config{
		Notion: NotionConfig{
			BaseURL:       "https://api.notion.com",
			Version:       "2022-06-28",
			PageSize:      100,
			RetryInterval: 500 * time.Millisecond,
			Timeout:       30 * time.Second,
		},
		Render: RenderConfig{
			ChildPageLinkTarget:     "remote_origin",
			ChildDatabaseLinkTarget: "remote_origin",
			Origin:                  "https://www.notion.so",
			TableWidth:              "ascii_double",
		},
		Export: ExportConfig{
			OutputDir:   ".",
			Format:      "markdown",
			FrontMatter: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate checks everything except credentials, so offline rendering can
// validate a config without a token. Use ValidateForAPI before talking to
// Notion.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Notion.BaseURL) == "" {
		return ErrNotionBaseURLRequired
	}
	if cfg.Notion.PageSize < 0 || cfg.Notion.PageSize > 100 {
		return fmt.Errorf("%w: %d", ErrPageSizeInvalid, cfg.Notion.PageSize)
	}
	if cfg.Notion.RetryInterval <= 0 {
		return ErrRetryIntervalInvalid
	}
	if cfg.Notion.Timeout < 0 {
		return ErrTimeoutInvalid
	}
	if !isLinkTarget(cfg.Render.ChildPageLinkTarget) {
		return fmt.Errorf("%w: child page %q", ErrLinkTargetInvalid, cfg.Render.ChildPageLinkTarget)
	}
	if !isLinkTarget(cfg.Render.ChildDatabaseLinkTarget) {
		return fmt.Errorf("%w: child database %q", ErrLinkTargetInvalid, cfg.Render.ChildDatabaseLinkTarget)
	}
	switch normalize(cfg.Render.TableWidth) {
	case "", "ascii_double", "east_asian":
	default:
		return fmt.Errorf("%w: %s", ErrTableWidthInvalid, cfg.Render.TableWidth)
	}
	switch normalize(cfg.Export.Format) {
	case "", "markdown", "html":
	default:
		return fmt.Errorf("%w: %s", ErrExportFormatInvalid, cfg.Export.Format)
	}
	if strings.TrimSpace(cfg.Export.OutputDir) == "" {
		return ErrOutputDirRequired
	}

	provider := normalize(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// ValidateForAPI runs Validate and additionally requires a token.
func (cfg Config) ValidateForAPI() error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Notion.Token) == "" {
		return ErrNotionTokenRequired
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isLinkTarget(value string) bool {
	switch normalize(value) {
	case "", "remote_origin", "markdown_file":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "", "console", "gologger", "none":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
