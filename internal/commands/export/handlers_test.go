package exportcmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/mikecat1024/notion-to-markdown/internal/export"
)

type stubExporter struct {
	requests []export.Request
	result   *export.Result
	err      error
}

func (s *stubExporter) Export(_ context.Context, req export.Request) (*export.Result, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubRegistry struct {
	handlers []any
}

func (r *stubRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

const pageID = "598337872cf94fdf8782e53db20768a5"

func TestExportPageHandlerRunsService(t *testing.T) {
	svc := &stubExporter{result: &export.Result{Files: []export.File{{PageID: pageID, Path: "notes.md", Bytes: 12}}}}
	var reported *export.Result
	handler := NewExportPageHandler(svc, nil, func(r *export.Result) { reported = r })

	err := handler.Execute(context.Background(), ExportPageCommand{PageID: pageID, Format: "markdown", FrontMatter: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.requests) != 1 {
		t.Fatalf("expected one export, got %d", len(svc.requests))
	}
	req := svc.requests[0]
	if req.PageID != "59833787-2cf9-4fdf-8782-e53db20768a5" || !req.FrontMatter {
		t.Fatalf("unexpected request %+v", req)
	}
	if reported != svc.result {
		t.Fatal("expected result to be reported")
	}
}

func TestExportPageHandlerRejectsInvalidMessage(t *testing.T) {
	svc := &stubExporter{}
	handler := NewExportPageHandler(svc, nil, nil)

	err := handler.Execute(context.Background(), ExportPageCommand{PageID: "nope"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(svc.requests) != 0 {
		t.Fatal("expected service not to run")
	}
}

func TestExportPageHandlerWrapsServiceError(t *testing.T) {
	svc := &stubExporter{err: errors.New("boom")}
	handler := NewExportPageHandler(svc, nil, func(*export.Result) { t.Fatal("unexpected report") })

	err := handler.Execute(context.Background(), ExportPageCommand{PageID: pageID})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestRegisterExportCommands(t *testing.T) {
	if _, err := RegisterExportCommands(nil, nil, nil, nil); !errors.Is(err, ErrServiceRequired) {
		t.Fatalf("expected ErrServiceRequired, got %v", err)
	}

	reg := &stubRegistry{}
	handler, err := RegisterExportCommands(reg, &stubExporter{}, nil, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(reg.handlers) != 1 || reg.handlers[0] != any(handler) {
		t.Fatalf("expected handler to be registered, got %v", reg.handlers)
	}
}
