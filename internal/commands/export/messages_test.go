package exportcmd

import "testing"

func TestExportPageCommandValidate(t *testing.T) {
	cases := []struct {
		name    string
		cmd     ExportPageCommand
		wantErr bool
	}{
		{name: "missing page", cmd: ExportPageCommand{}, wantErr: true},
		{name: "garbage page", cmd: ExportPageCommand{PageID: "hello"}, wantErr: true},
		{name: "undashed id", cmd: ExportPageCommand{PageID: "598337872cf94fdf8782e53db20768a5"}},
		{name: "page url", cmd: ExportPageCommand{PageID: "https://www.notion.so/Notes-598337872cf94fdf8782e53db20768a5"}},
		{name: "html", cmd: ExportPageCommand{PageID: "598337872cf94fdf8782e53db20768a5", Format: "HTML"}},
		{name: "bad format", cmd: ExportPageCommand{PageID: "598337872cf94fdf8782e53db20768a5", Format: "pdf"}, wantErr: true},
		{name: "page size too large", cmd: ExportPageCommand{PageID: "598337872cf94fdf8782e53db20768a5", PageSize: 101}, wantErr: true},
		{name: "negative page size", cmd: ExportPageCommand{PageID: "598337872cf94fdf8782e53db20768a5", PageSize: -1}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cmd.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestExportPageCommandRequestNormalizesID(t *testing.T) {
	cmd := ExportPageCommand{
		PageID:    "https://www.notion.so/Notes-598337872cf94fdf8782e53db20768a5",
		OutputDir: "out",
		Recursive: true,
	}
	req := cmd.request()
	if req.PageID != "59833787-2cf9-4fdf-8782-e53db20768a5" {
		t.Fatalf("unexpected page id %q", req.PageID)
	}
	if req.OutputDir != "out" || !req.Recursive {
		t.Fatalf("expected fields to carry over, got %+v", req)
	}
}
