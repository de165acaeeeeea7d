// Package pkg provides the core libraries for Orbital graph layout.
//
// # Overview
//
// Orbital places the nodes of a connected graph on concentric orbits around
// a gravitational center: heavily linked nodes sink toward the middle,
// satellites ring outward, and tightly tagged neighbors merge into shared
// orbits. The pkg directory is organized into five main areas:
//
//  1. [orbit] - The layout engine (registration, topology, clustering, placement)
//  2. [graph] - Document and layout serialization (TOML/JSON in, versioned JSON out)
//  3. [pipeline] - Orchestration (decode → layout → render) used by CLI and API
//  4. [cache] / [store] - Infrastructure (file/Redis caching, memory/MongoDB storage)
//  5. [render] - Visualization (native SVG orbit maps, Graphviz DOT export)
//
// # Architecture
//
// The typical data flow through Orbital:
//
//	TOML/JSON graph document
//	         ↓
//	    [graph] package (decode + build the node system)
//	         ↓
//	    [orbit] package (validate, cluster, place on orbits)
//	         ↓
//	    [render] package (orbit map SVG, PNG/PDF, DOT)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
// Decode a document and render an orbit map:
//
//	import (
//	    "github.com/matzehuels/orbital/pkg/graph"
//	    "github.com/matzehuels/orbital/pkg/render/orbitmap"
//	)
//
//	// 1. Read the graph document
//	doc, _ := graph.ReadDocumentFile("services.toml")
//
//	// 2. Build the engine system and distribute it
//	sys, _ := graph.Build(doc)
//	res, _ := sys.Distribute()
//
//	// 3. Convert to the serialization format
//	l := graph.FromResult(doc.Name, res)
//
//	// 4. Render to SVG
//	svg := orbitmap.RenderSVG(l, orbitmap.WithOrbits())
//
// # Main Packages
//
// ## Engine
//
// [orbit] - The layout engine. Nodes register with a radius, a weight, and
// undirected links; Distribute validates the graph, optionally merges
// clusterable neighbors, and returns placements (x, y, orbit) per node.
// The engine never mutates caller objects and draws nothing.
//
// ## Serialization
//
// [graph] - The declarative document format (TOML or JSON nodes with links,
// tags, and cluster bounds) and the versioned layout format shared by the
// API, the store, the cache, and the CLI.
//
// ## Orchestration
//
// [pipeline] - Complete layout pipeline (decode → layout → render) used by
// CLI and API. Ensures consistent behavior across all entry points, with
// per-stage caching and timing.
//
// ## Infrastructure
//
// [cache] - Layout and artifact caching keyed by content+options hashes.
// FileCache for the CLI (hash-sharded files under the XDG cache dir),
// RedisCache for the API, NullCache for tests and --no-cache runs.
//
// [store] - Persistence for saved layouts behind a small Store interface.
// MemoryStore for development and tests, MongoStore for deployments.
//
// [errors] - Structured errors {Code, Message, Cause} used by the pipeline,
// the HTTP API, and the CLI to classify failures for display and status
// mapping.
//
// [observability] - Process-wide hooks for layout, cache, and HTTP events.
// Defaults are no-ops; hosts register collectors at startup.
//
// ## Visualization
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG via
// rsvg-convert).
//
//   - [render/orbitmap]: Orbital's native SVG renderer (orbit rings, chords,
//     discs, labels; light and dark themes)
//   - [render/dot]: Graphviz DOT export, pinned to engine coordinates or
//     free for a Graphviz engine to re-arrange
//
// # Common Workflows
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    DocumentPath: "services.toml",
//	    Formats:      []string{"svg", "json"},
//	})
//
// Persist a layout:
//
//	rec, _ := store.Save(ctx, result.Layout.Name, result.Layout)
//	fmt.Println(rec.ID)
//
// Export DOT and render it with Graphviz:
//
//	src := dot.ToDOT(layout, dot.Options{Engine: "fdp"})
//	svg, _ := dot.RenderSVG(src)
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/orbit/...    # Engine only
//	go test -run Example       # Examples only
//
// [orbit]: https://pkg.go.dev/github.com/matzehuels/orbital/pkg/orbit
// [graph]: https://pkg.go.dev/github.com/matzehuels/orbital/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/orbital/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/orbital/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/orbital/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/orbital/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/orbital/pkg/observability
// [render]: https://pkg.go.dev/github.com/matzehuels/orbital/pkg/render
// [render/orbitmap]: https://pkg.go.dev/github.com/matzehuels/orbital/pkg/render/orbitmap
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/orbital/pkg/render/dot
package pkg
