package exportcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mikecat1024/notion-to-markdown/internal/assembler"
	"github.com/mikecat1024/notion-to-markdown/internal/export"
	"github.com/mikecat1024/notion-to-markdown/internal/notionapi"
)

const exportPageMessageType = "notionmd.export.page"

// ExportPageCommand exports one Notion page, and optionally its child pages,
// to files.
type ExportPageCommand struct {
	// PageID is a dashed or undashed page id, or a page URL.
	PageID string `json:"page_id"`
	// OutputPath names the root file. When empty the file is named after the
	// page title inside OutputDir.
	OutputPath string `json:"output_path,omitempty"`
	OutputDir  string `json:"output_dir,omitempty"`
	// Format is markdown (default) or html.
	Format      string `json:"format,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
	FrontMatter bool   `json:"front_matter,omitempty"`
	Recursive   bool   `json:"recursive,omitempty"`
	Overwrite   bool   `json:"overwrite,omitempty"`
}

// Type implements command.Message.
func (ExportPageCommand) Type() string { return exportPageMessageType }

// Validate checks the page id and output settings before handlers run.
func (cmd ExportPageCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageID, validation.Required, validation.By(func(value any) error {
			if _, err := notionapi.NormalizeID(value.(string)); err != nil {
				return validation.NewError("notionmd.export.page_id_invalid", "must be a Notion page id or URL")
			}
			return nil
		})),
		validation.Field(&cmd.Format, validation.By(func(value any) error {
			switch strings.ToLower(strings.TrimSpace(value.(string))) {
			case "", export.FormatMarkdown, export.FormatHTML:
				return nil
			}
			return validation.NewError("notionmd.export.format_invalid", "must be markdown or html")
		})),
		validation.Field(&cmd.PageSize, validation.Min(0), validation.Max(assembler.MaxPageSize)),
	)
}

func (cmd ExportPageCommand) request() export.Request {
	id, err := notionapi.NormalizeID(cmd.PageID)
	if err != nil {
		id = cmd.PageID
	}
	return export.Request{
		PageID:      id,
		OutputPath:  cmd.OutputPath,
		OutputDir:   cmd.OutputDir,
		Format:      cmd.Format,
		PageSize:    cmd.PageSize,
		FrontMatter: cmd.FrontMatter,
		Recursive:   cmd.Recursive,
		Overwrite:   cmd.Overwrite,
	}
}
