package pipeline

import (
	"github.com/matzehuels/orbital/pkg/graph"
	"github.com/matzehuels/orbital/pkg/orbit"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout distributes a document's node set and exports the result as
// a serializable layout. This is the uncached stage function; use
// [Runner.Layout] for the cached path.
func ComputeLayout(doc *graph.Document, opts Options) (graph.Layout, error) {
	opts.SetLayoutDefaults()

	sys, err := graph.Build(doc)
	if err != nil {
		return graph.Layout{}, err
	}

	distOpts := []orbit.Option{
		orbit.WithClustering(opts.ShouldCluster()),
		orbit.WithComponentSpacing(opts.ComponentGap),
	}
	if opts.Parallelism > 1 {
		distOpts = append(distOpts, orbit.WithParallelism(opts.Parallelism))
	}

	res, err := sys.Distribute(distOpts...)
	if err != nil {
		return graph.Layout{}, err
	}

	name := opts.Name
	if name == "" {
		name = doc.Name
	}
	return graph.FromResult(name, res), nil
}
