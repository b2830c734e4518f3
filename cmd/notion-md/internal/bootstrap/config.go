package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	notionmd "github.com/mikecat1024/notion-to-markdown"
)

// EnvPrefix prefixes every environment override, e.g. NOTION_MD_EXPORT_FORMAT.
const EnvPrefix = "NOTION_MD"

// DefaultEnvFile is loaded when present; a missing file is not an error.
const DefaultEnvFile = ".env"

// Options locate the configuration sources.
type Options struct {
	// ConfigFile is an explicit config file. When empty notion-md.{yaml,json,toml}
	// is looked up in the working directory.
	ConfigFile string
	// EnvFile is loaded into the process environment before reading
	// variables. Empty means DefaultEnvFile.
	EnvFile string
}

// LoadConfig merges defaults, the config file, the environment and any flags
// already bound to v, in increasing precedence.
func LoadConfig(v *viper.Viper, opts Options) (notionmd.Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return notionmd.Config{}, err
	}

	setDefaults(v, notionmd.DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("notion.token", EnvPrefix+"_NOTION_TOKEN", "NOTION_TOKEN"); err != nil {
		return notionmd.Config{}, err
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("notion-md")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return notionmd.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg notionmd.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return notionmd.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// setDefaults registers every key so environment variables resolve during
// Unmarshal even when no config file mentions them.
func setDefaults(v *viper.Viper, cfg notionmd.Config) {
	v.SetDefault("notion.token", cfg.Notion.Token)
	v.SetDefault("notion.base_url", cfg.Notion.BaseURL)
	v.SetDefault("notion.version", cfg.Notion.Version)
	v.SetDefault("notion.page_size", cfg.Notion.PageSize)
	v.SetDefault("notion.retry_interval", cfg.Notion.RetryInterval)
	v.SetDefault("notion.max_retries", cfg.Notion.MaxRetries)
	v.SetDefault("notion.timeout", cfg.Notion.Timeout)

	v.SetDefault("render.child_page_link_target", cfg.Render.ChildPageLinkTarget)
	v.SetDefault("render.child_database_link_target", cfg.Render.ChildDatabaseLinkTarget)
	v.SetDefault("render.origin", cfg.Render.Origin)
	v.SetDefault("render.table_width", cfg.Render.TableWidth)

	v.SetDefault("export.output_dir", cfg.Export.OutputDir)
	v.SetDefault("export.format", cfg.Export.Format)
	v.SetDefault("export.front_matter", cfg.Export.FrontMatter)
	v.SetDefault("export.recursive", cfg.Export.Recursive)
	v.SetDefault("export.overwrite", cfg.Export.Overwrite)

	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)
}

