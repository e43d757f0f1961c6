// Package validator provides the per-artifact-type validation
// implementations and their dispatch registries.
package validator

import (
	"context"
	"fmt"

	"github.com/qiita-spots/qtp-diversity/internal/registry"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// Error types for the validator package
var (
	ErrMissingFile = fmt.Errorf("missing required input file")
)

// Validator defines the interface for per-sample-identifier artifact
// validators. Implementations parse the designated plain text file,
// cross-check sample identifiers against the metadata and build the
// artifact descriptor.
type Validator interface {
	// Validate checks the file group against the metadata. Soft failures
	// (structural or identifier problems the job runner should report
	// verbatim) are returned inside the Result; parse and I/O failures
	// are returned as errors.
	Validate(ctx context.Context, files types.FileGroup, metadata types.SampleMetadata, outDir string) (*types.Result, error)
}

// NewRegistry returns the validator registry covering the semantic
// artifact types. Every registered type has exactly one validator.
func NewRegistry() *registry.Registry[Validator] {
	r := registry.New[Validator]()
	r.Register(types.ArtifactTypeDistanceMatrix, NewDistanceMatrixValidator())
	r.Register(types.ArtifactTypeOrdinationResults, NewOrdinationResultsValidator())
	r.Register(types.ArtifactTypeAlphaVector, NewAlphaVectorValidator())
	r.Register(types.ArtifactTypeFeatureData, NewFeatureDataValidator())
	r.Register(types.ArtifactTypeSampleData, NewSampleDataValidator())
	return r
}

// artifactFiles builds the descriptor file list for a validated artifact:
// the plain text file plus the optional qza companion, carried through
// unmodified when present
func artifactFiles(files types.FileGroup) []types.FileEntry {
	entries := []types.FileEntry{{Path: files.First(types.RolePlainText), Role: types.RolePlainText}}
	if files.Has(types.RoleQza) {
		entries = append(entries, types.FileEntry{Path: files.First(types.RoleQza), Role: types.RoleQza})
	}
	return entries
}
