package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// Document Decoding API
// =============================================================================

// Decoder turns raw document bytes into a [Document].
type Decoder interface {
	// Decode parses the raw bytes of a graph document.
	Decode(data []byte) (*Document, error)
	// Supports reports whether this decoder handles the given filename.
	Supports(filename string) bool
	// Type returns the format identifier (e.g., "toml").
	Type() string
}

// Decoders returns the default decoder set, in detection order.
func Decoders() []Decoder {
	return []Decoder{TOMLDecoder{}, JSONDecoder{}}
}

// DetectDecoder finds a decoder that supports the given file path.
// Returns an error if no decoder matches.
func DetectDecoder(path string, decoders ...Decoder) (Decoder, error) {
	name := filepath.Base(path)
	for _, d := range decoders {
		if d.Supports(name) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("unsupported document format: %s", name)
}

// ReadDocumentFile reads and decodes a graph document, detecting the format
// from the file extension.
func ReadDocumentFile(path string) (*Document, error) {
	dec, err := DetectDecoder(path, Decoders()...)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := dec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

// =============================================================================
// Decoders
// =============================================================================

// TOMLDecoder decodes TOML graph documents.
type TOMLDecoder struct{}

// Type returns the format identifier.
func (TOMLDecoder) Type() string { return FormatTOML }

// Supports reports whether the filename has a TOML extension.
func (TOMLDecoder) Supports(filename string) bool {
	return filepath.Ext(filename) == ".toml"
}

// Decode parses a TOML graph document.
func (TOMLDecoder) Decode(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	return &doc, nil
}

// JSONDecoder decodes JSON graph documents.
type JSONDecoder struct{}

// Type returns the format identifier.
func (JSONDecoder) Type() string { return FormatJSON }

// Supports reports whether the filename has a JSON extension.
func (JSONDecoder) Supports(filename string) bool {
	return filepath.Ext(filename) == ".json"
}

// Decode parses a JSON graph document.
func (JSONDecoder) Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return &doc, nil
}
