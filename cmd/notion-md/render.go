package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikecat1024/notion-to-markdown/cmd/notion-md/internal/bootstrap"
	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
)

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a saved children listing without contacting Notion",
		Long: `Render a JSON array of blocks, with nested children under "children", or a
saved list response. Reads stdin when no file or - is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return a.fail(a.runRender(path))
		},
	}
	addRenderFlags(cmd)
	return cmd
}

func (a *app) runRender(path string) error {
	data, err := a.readInput(path)
	if err != nil {
		return err
	}
	list, err := blocks.DecodeDump(data)
	if err != nil {
		return err
	}

	module, err := bootstrap.BuildModule(a.cfg, false)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(a.out, module.Module.RenderBlocks(list))
	return err
}

func (a *app) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(a.in)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
