package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	apperrors "github.com/matzehuels/orbital/pkg/errors"
	"github.com/matzehuels/orbital/pkg/graph"
)

// Decode reads and validates the graph document named by opts. It returns
// the decoded document together with the raw bytes it was decoded from, so
// callers can derive a content hash without re-reading the source.
func Decode(opts Options) (*graph.Document, []byte, error) {
	if err := opts.ValidateForDecode(); err != nil {
		return nil, nil, err
	}

	var (
		raw []byte
		dec graph.Decoder
		err error
	)

	if opts.Document != "" {
		raw = []byte(opts.Document)
		dec, err = graph.DetectDecoder(opts.DocumentFilename, graph.Decoders()...)
	} else {
		raw, err = os.ReadFile(opts.DocumentPath)
		if err != nil {
			code := apperrors.ErrCodeInternal
			if errors.Is(err, fs.ErrNotExist) {
				code = apperrors.ErrCodeFileNotFound
			}
			return nil, nil, apperrors.Wrap(code, err, "read document %s", opts.DocumentPath)
		}
		dec, err = graph.DetectDecoder(opts.DocumentPath, graph.Decoders()...)
	}
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrCodeInvalidDocument, err, "detect document format")
	}

	doc, err := dec.Decode(raw)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrCodeInvalidDocument, err, "decode %s document", dec.Type())
	}

	// Ids come from an untrusted document; reject garbage here so the
	// engine only ever sees structural problems (duplicates, dangling refs).
	for i, n := range doc.Nodes {
		if err := apperrors.ValidateNodeID(n.ID); err != nil {
			return nil, nil, fmt.Errorf("node %d: %w", i, err)
		}
		for _, link := range n.Links {
			if err := apperrors.ValidateNodeID(link); err != nil {
				return nil, nil, fmt.Errorf("node %q links: %w", n.ID, err)
			}
		}
	}

	// Callers (CLI flag, API request field) may override the document name.
	if opts.Name != "" {
		doc.Name = opts.Name
	}

	return doc, raw, nil
}
