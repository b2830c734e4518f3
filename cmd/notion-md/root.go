package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	notionmd "github.com/mikecat1024/notion-to-markdown"
	"github.com/mikecat1024/notion-to-markdown/cmd/notion-md/internal/bootstrap"
)

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// app carries state shared by sub-commands.
type app struct {
	streams
	v    *viper.Viper
	opts bootstrap.Options
	cfg  notionmd.Config
}

func newRootCmd(s streams) *cobra.Command {
	a := &app{streams: s, v: viper.New()}

	root := &cobra.Command{
		Use:   "notion-md",
		Short: "Convert Notion pages to Markdown",
		Long: `notion-md fetches the block tree of a Notion page and renders it as Markdown.

Examples:
  notion-md export https://www.notion.so/Notes-598337872cf94fdf8782e53db20768a5
  notion-md export 598337872cf94fdf8782e53db20768a5 --recursive --out-dir docs
  notion-md render children.json

The integration token is read from NOTION_TOKEN, NOTION_MD_NOTION_TOKEN or the
notion.token key of the config file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			bindRenderFlags(cmd, a.v)
			cfg, err := bootstrap.LoadConfig(a.v, a.opts)
			if err != nil {
				return a.fail(err)
			}
			a.cfg = cfg
			return nil
		},
	}
	root.SetIn(s.in)
	root.SetOut(s.out)
	root.SetErr(s.err)

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.ConfigFile, "config", "", "config file (default ./notion-md.yaml when present)")
	flags.StringVar(&a.opts.EnvFile, "env-file", "", "dotenv file to load (default ./.env when present)")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")
	flags.String("log-provider", "", "logger: console, gologger or none")
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.provider", flags.Lookup("log-provider"))

	root.AddCommand(newExportCmd(a), newRenderCmd(a))
	return root
}

// renderFlagKeys maps renderer flags to their config keys.
var renderFlagKeys = map[string]string{
	"child-page-links":     "render.child_page_link_target",
	"child-database-links": "render.child_database_link_target",
	"table-width":          "render.table_width",
	"origin":               "render.origin",
}

// addRenderFlags registers renderer flags shared by export and render.
func addRenderFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("child-page-links", "", "child page links: remote_origin or markdown_file")
	flags.String("child-database-links", "", "child database links: remote_origin or markdown_file")
	flags.String("table-width", "", "table cell width rule: ascii_double or east_asian")
	flags.String("origin", "", "host used for links back to Notion")
}

// bindRenderFlags binds the renderer flags of the running command. Both
// sub-commands declare them, so binding happens per invocation.
func bindRenderFlags(cmd *cobra.Command, v *viper.Viper) {
	for name, key := range renderFlagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}

func (a *app) fail(err error) error {
	if err != nil {
		color.New(color.FgRed).Fprintf(a.err, "error: %v\n", err)
	}
	return err
}
