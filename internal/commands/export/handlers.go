package exportcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/mikecat1024/notion-to-markdown/internal/commands"
	"github.com/mikecat1024/notion-to-markdown/internal/export"
	"github.com/mikecat1024/notion-to-markdown/internal/logging"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

const exportOperation = "export.page"

// ErrServiceRequired is returned when registering without an exporter.
var ErrServiceRequired = errors.New("export command: service is nil")

var _ command.Commander[ExportPageCommand] = (*ExportPageHandler)(nil)

// Exporter is the part of export.Service the handler drives.
type Exporter interface {
	Export(ctx context.Context, req export.Request) (*export.Result, error)
}

// Reporter receives the result of every successful export.
type Reporter func(result *export.Result)

// ExportPageHandler executes ExportPageCommand.
type ExportPageHandler struct {
	inner *commands.Handler[ExportPageCommand]
}

// NewExportPageHandler binds a handler to service. report may be nil.
func NewExportPageHandler(service Exporter, logger interfaces.Logger, report Reporter, opts ...commands.HandlerOption[ExportPageCommand]) *ExportPageHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ExportPageCommand) error {
		result, err := service.Export(ctx, msg.request())
		if err != nil {
			return err
		}
		total := 0
		for _, f := range result.Files {
			total += f.Bytes
		}
		logging.WithFields(baseLogger, map[string]any{
			"files": len(result.Files),
			"bytes": total,
		}).Info("export.command.page.completed")
		if report != nil {
			report(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportPageCommand]{
		commands.WithLogger[ExportPageCommand](baseLogger),
		commands.WithOperation[ExportPageCommand](exportOperation),
		commands.WithMessageFields(func(msg ExportPageCommand) map[string]any {
			fields := map[string]any{"page_id": msg.PageID}
			if msg.Format != "" {
				fields["format"] = msg.Format
			}
			if msg.Recursive {
				fields["recursive"] = true
			}
			if msg.Overwrite {
				fields["overwrite"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportPageCommand](nil)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportPageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *ExportPageHandler) Execute(ctx context.Context, msg ExportPageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CommandRegistry is the registration contract of a go-command registry.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// RegisterExportCommands builds the export handler and registers it with reg
// when reg is non-nil.
func RegisterExportCommands(reg CommandRegistry, service Exporter, provider interfaces.LoggerProvider, report Reporter, opts ...commands.HandlerOption[ExportPageCommand]) (*ExportPageHandler, error) {
	if service == nil {
		return nil, ErrServiceRequired
	}
	handler := NewExportPageHandler(service, commands.CommandLogger(provider, "export"), report, opts...)
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}
