package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/orbital/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"json only", "json", []string{"json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid pdf", []string{"pdf"}, false},
		{"valid png", []string{"png"}, false},
		{"valid json", []string{"json"}, false},
		{"valid dot", []string{"dot"}, false},
		{"valid multiple", []string{"svg", "pdf", "png"}, false},
		{"invalid format", []string{"gif"}, true},
		{"mixed valid invalid", []string{"svg", "gif"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"input toml", "", "services.toml", "services"},
		{"input json document", "", "services.json", "services"},
		{"input layout file", "", "services.layout.json", "services"},
		{"input with directory", "", "docs/services.toml", "docs/services"},
		{"explicit output base", "out/graph", "services.toml", "out/graph"},
		{"explicit output with format ext", "graph.svg", "services.toml", "graph"},
		{"explicit output with other ext", "graph.out", "services.toml", "graph.out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "services.toml")

	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
		"dot":  []byte("graph {}"),
	}

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg", "json"},
		input:     input,
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	if len(written) != 2 {
		t.Fatalf("writeArtifacts() wrote %d files, want 2", len(written))
	}

	wantSVG := filepath.Join(dir, "services.svg")
	if written["svg"] != wantSVG {
		t.Errorf("svg path = %q, want %q", written["svg"], wantSVG)
	}

	// The json artifact carries the .layout marker so it never clobbers a
	// JSON graph document.
	wantJSON := filepath.Join(dir, "services.layout.json")
	if written["json"] != wantJSON {
		t.Errorf("json path = %q, want %q", written["json"], wantJSON)
	}

	// dot was rendered but not requested
	if _, ok := written["dot"]; ok {
		t.Error("writeArtifacts() wrote an unrequested format")
	}

	data, err := os.ReadFile(wantSVG)
	if err != nil {
		t.Fatalf("read %s: %v", wantSVG, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("svg content = %q, want %q", data, "<svg/>")
	}
}

func TestWriteArtifactsExplicitOutput(t *testing.T) {
	dir := t.TempDir()

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"png": []byte{0x89, 'P', 'N', 'G'}},
		formats:   []string{"png"},
		input:     "services.toml",
		output:    filepath.Join(dir, "graph.png"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	want := filepath.Join(dir, "graph.png")
	if written["png"] != want {
		t.Errorf("png path = %q, want %q", written["png"], want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected file %s: %v", want, err)
	}
}
