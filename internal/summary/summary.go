// Package summary provides functionality for rendering human-viewable
// HTML summaries of validated diversity artifacts.
package summary

import (
	"context"
	"fmt"

	"github.com/qiita-spots/qtp-diversity/internal/registry"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// Error types for the summary package
var (
	ErrRenderFailed = fmt.Errorf("render failed")
)

// Result contains the output of a render operation
type Result struct {
	// HTMLPath is the path to the generated HTML summary
	HTMLPath string
	// SupportDir is the auxiliary support directory, empty when the
	// summary is self-contained
	SupportDir string
}

// Renderer defines the interface for per-type HTML summary renderers.
// Implementations read the artifact files, join them with the sample
// metadata and write a summary under the caller-provided output
// directory. The output directory is assumed to exist and is never
// cleaned up by the renderer.
type Renderer interface {
	// Render produces the HTML summary and returns its location plus an
	// optional auxiliary support directory
	Render(ctx context.Context, files types.FileGroup, metadata types.SampleMetadata, outDir string) (*Result, error)
}

// NewRegistry returns the summary renderer registry. Its coverage differs
// from the validator registry: FeatureData and SampleData artifacts are
// validated but have no summary renderer.
func NewRegistry() *registry.Registry[Renderer] {
	r := registry.New[Renderer]()
	r.Register(types.ArtifactTypeDistanceMatrix, NewDistanceMatrixRenderer())
	r.Register(types.ArtifactTypeOrdinationResults, NewOrdinationResultsRenderer())
	r.Register(types.ArtifactTypeAlphaVector, NewAlphaVectorRenderer())
	return r
}
