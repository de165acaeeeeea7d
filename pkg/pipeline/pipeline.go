// Package pipeline provides the core layout pipeline for Orbital.
//
// This package implements the complete decode → distribute → render pipeline
// that can be used by CLI, API, and worker components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Read and validate a graph document (TOML or JSON)
//  2. Layout: Distribute the node set into placed bodies and edges
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DocumentPath: "services.toml",
//	    Formats:      []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Decode only
//	doc, raw, err := pipeline.Decode(opts)
//
//	// Layout with an existing document
//	layout, err := runner.Layout(ctx, doc, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orbital/pkg/cache"
	apperrors "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/graph"
	"github.com/matzehuels/orbital/pkg/render/orbitmap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultComponentGap is the horizontal gap between disconnected
	// components, in document units. The engine itself defaults to a shared
	// origin (components may overlap); the pipeline always spaces them so
	// rendered output stays readable. Callers can override per run.
	DefaultComponentGap = 2.0

	// DefaultScale is how many output units one document unit maps to in
	// SVG output.
	DefaultScale = 10.0

	// DefaultTheme is the default color theme.
	DefaultTheme = "light"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidThemes is the set of supported color themes.
var ValidThemes = map[string]bool{
	orbitmap.Light.Name: true,
	orbitmap.Dark.Name:  true,
}

// ValidEngines is the set of Graphviz engines accepted for unpinned DOT
// export. The empty string means pinned export with neato.
var ValidEngines = map[string]bool{
	"":      true,
	"dot":   true,
	"neato": true,
	"fdp":   true,
	"circo": true,
	"twopi": true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Decode options
	DocumentPath     string `json:"document_path,omitempty"`
	Document         string `json:"document,omitempty"`          // inline document content
	DocumentFilename string `json:"document_filename,omitempty"` // selects the decoder for inline content
	Name             string `json:"name,omitempty"`              // overrides the document's name

	// Layout options
	NoCluster    bool    `json:"no_cluster,omitempty"` // Skip the clustering pass (default: false = cluster)
	ComponentGap float64 `json:"component_gap,omitempty"`
	Parallelism  int     `json:"parallelism,omitempty"` // Component placement goroutines (no output effect)
	Refresh      bool    `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Theme      string   `json:"theme,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	ShowOrbits bool     `json:"show_orbits,omitempty"`
	ShowLabels bool     `json:"show_labels,omitempty"`
	Engine     string   `json:"engine,omitempty"` // Graphviz engine for unpinned DOT export ("" = pinned)

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the decoded graph document.
	Document *graph.Document

	// DocumentHash is the content hash of the raw document.
	DocumentHash string

	// Layout contains the placed bodies and edges.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	BodyCount  int
	EdgeCount  int
	Components int
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage. Decoding is local
// work and never cached.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTheme checks that a theme is valid.
func ValidateTheme(theme string) error {
	if !ValidThemes[theme] {
		return apperrors.New(apperrors.ErrCodeInvalidTheme, "invalid theme: %q (must be one of: light, dark)", theme)
	}
	return nil
}

// ValidateEngine checks that a Graphviz engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return apperrors.New(apperrors.ErrCodeInvalidEngine, "invalid engine: %q (must be one of: dot, neato, fdp, circo, twopi)", engine)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDecode(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDecode checks required fields for decoding.
func (o *Options) ValidateForDecode() error {
	if o.DocumentPath == "" && o.Document == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "document_path or document is required")
	}
	if o.Document != "" && o.DocumentFilename == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "document_filename is required with an inline document")
	}
	if o.Document != "" {
		if err := apperrors.ValidateDocumentFilename(o.DocumentFilename); err != nil {
			return err
		}
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.ComponentGap == 0 {
		o.ComponentGap = DefaultComponentGap
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateTheme(o.Theme); err != nil {
		return err
	}
	if o.Scale < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid scale: %v (must be positive)", o.Scale)
	}
	return ValidateEngine(o.Engine)
}

// ShouldCluster returns whether the clustering pass should run.
func (o *Options) ShouldCluster() bool {
	return !o.NoCluster
}

// Source describes where the document comes from, for logs and hooks.
func (o *Options) Source() string {
	if o.Document != "" {
		return "inline:" + o.DocumentFilename
	}
	return o.DocumentPath
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		NoCluster:    o.NoCluster,
		ComponentGap: o.ComponentGap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Theme:      o.Theme,
		Scale:      o.Scale,
		ShowOrbits: o.ShowOrbits,
		ShowLabels: o.ShowLabels,
		Engine:     o.Engine,
	}
}
