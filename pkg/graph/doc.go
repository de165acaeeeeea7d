// Package graph provides the document and layout formats around the engine.
//
// This package defines the canonical wire formats for Orbital's graph data,
// used for input files, API requests, storage, caching, and cross-tool
// interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between external formats
// and the engine:
//
//   - [Document]: declarative graph input (TOML or JSON)
//   - pkg/orbit.System: the engine representation, produced by [Build]
//   - [Layout]: positioned output, produced by [FromResult]
//
// # Document Format
//
// Documents declare bodies and their relationships:
//
//	name = "billing"
//
//	[[nodes]]
//	id = "gateway"
//	radius = 3.0
//	links = ["auth", "api"]
//
//	[[nodes]]
//	id = "auth"
//	radius = 1.5
//	tags = ["backend"]
//
// The same structure is accepted as JSON. Decoding is extension-driven:
//
//	doc, _ := graph.ReadDocumentFile("billing.toml")
//	sys, _ := graph.Build(doc)
//	res, _ := sys.Distribute()
//
// # Layout Serialization
//
// Layouts use a flat body-edge JSON format:
//
//	layout := graph.FromResult("billing", res)
//	data, _ := graph.MarshalLayout(layout)       // Layout → []byte
//	parsed, _ := graph.UnmarshalLayout(data)     // []byte → Layout
//	_ = graph.WriteLayoutFile(layout, "out.json")
//
// Cluster bodies carry their member ids, so consumers can recover which
// original nodes were folded together.
//
// # Concurrency
//
// All functions are safe for concurrent use; decoded documents and layouts
// are plain values.
package graph
