package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mikecat1024/notion-to-markdown/cmd/notion-md/internal/bootstrap"
	"github.com/mikecat1024/notion-to-markdown/internal/commands"
	exportcmd "github.com/mikecat1024/notion-to-markdown/internal/commands/export"
	"github.com/mikecat1024/notion-to-markdown/internal/export"
)

type exportFlags struct {
	output  string
	timeout time.Duration
}

func newExportCmd(a *app) *cobra.Command {
	var f exportFlags

	cmd := &cobra.Command{
		Use:   "export <page-id-or-url>",
		Short: "Fetch a page and write it as Markdown or HTML",
		Long: `Fetch the full block tree of a page and write the rendered document.

With --output - the Markdown is printed to stdout and nothing is written.
With --recursive every child page is exported next to the root file and
child page links point at those files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fail(a.runExport(cmd, args[0], f))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.output, "output", "o", "", "root output file, or - for stdout (default <out-dir>/<title slug>.md)")
	flags.DurationVar(&f.timeout, "timeout", commands.DefaultCommandTimeout, "overall export timeout, 0 disables")
	flags.String("out-dir", "", "directory for exported files")
	flags.String("format", "", "output format: markdown or html")
	flags.Bool("front-matter", false, "prefix Markdown with YAML front matter")
	flags.Bool("recursive", false, "also export child pages")
	flags.Bool("overwrite", false, "replace files exported from other pages")
	flags.Int("page-size", 0, "children fetched per request, at most 100")
	_ = a.v.BindPFlag("export.output_dir", flags.Lookup("out-dir"))
	_ = a.v.BindPFlag("export.format", flags.Lookup("format"))
	_ = a.v.BindPFlag("export.front_matter", flags.Lookup("front-matter"))
	_ = a.v.BindPFlag("export.recursive", flags.Lookup("recursive"))
	_ = a.v.BindPFlag("export.overwrite", flags.Lookup("overwrite"))
	_ = a.v.BindPFlag("notion.page_size", flags.Lookup("page-size"))
	addRenderFlags(cmd)

	return cmd
}

func (a *app) runExport(cmd *cobra.Command, pageID string, f exportFlags) error {
	module, err := bootstrap.BuildModule(a.cfg, true)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if f.output == "-" {
		ctx, cancel := commands.ExportDeadline(ctx, f.timeout)
		defer cancel()
		markdown, err := module.Module.Render(ctx, pageID)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(a.out, markdown)
		return err
	}

	svc, err := module.Module.Container().Exporter()
	if err != nil {
		return err
	}
	handler, err := exportcmd.RegisterExportCommands(nil, svc,
		module.Module.Container().LoggerProvider(),
		a.report,
		commands.WithTimeout[exportcmd.ExportPageCommand](f.timeout),
	)
	if err != nil {
		return err
	}

	exp := a.cfg.Export
	err = handler.Execute(ctx, exportcmd.ExportPageCommand{
		PageID:      pageID,
		OutputPath:  f.output,
		OutputDir:   exp.OutputDir,
		Format:      exp.Format,
		PageSize:    a.cfg.Notion.PageSize,
		FrontMatter: exp.FrontMatter,
		Recursive:   exp.Recursive,
		Overwrite:   exp.Overwrite,
	})
	if errors.Is(err, export.ErrFileExists) {
		return fmt.Errorf("%w (use --overwrite to replace it)", err)
	}
	return err
}

func (a *app) report(result *export.Result) {
	ok := color.New(color.FgGreen)
	for _, file := range result.Files {
		label := file.Title
		if label == "" {
			label = file.PageID
		}
		ok.Fprintf(a.err, "wrote %s", file.Path)
		fmt.Fprintf(a.err, " (%s, %d bytes)\n", label, file.Bytes)
	}
}
