package validator

import (
	"context"
	"fmt"

	"github.com/qiita-spots/qtp-diversity/internal/logger"
	"github.com/qiita-spots/qtp-diversity/internal/parser"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// DistanceMatrixValidator validates distance matrix artifacts
type DistanceMatrixValidator struct{}

// NewDistanceMatrixValidator creates a new DistanceMatrixValidator
func NewDistanceMatrixValidator() *DistanceMatrixValidator {
	return &DistanceMatrixValidator{}
}

// Validate parses the distance matrix and checks that its sample
// identifiers are a subset of the metadata identifiers
func (v *DistanceMatrixValidator) Validate(ctx context.Context, files types.FileGroup, metadata types.SampleMetadata, outDir string) (*types.Result, error) {
	fp := files.First(types.RolePlainText)
	if fp == "" {
		return nil, fmt.Errorf("%w: plain_text", ErrMissingFile)
	}

	dm, err := parser.ReadDistanceMatrix(fp)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("samples", len(dm.IDs)).Str("file", fp).Msg("Parsed distance matrix")

	if !CheckSubset(dm.SampleIDSet(), metadata) {
		return types.Failure("The distance matrix contain samples not present in the metadata"), nil
	}

	return types.Successful(types.NewArtifactInfo(types.ArtifactTypeDistanceMatrix, artifactFiles(files))), nil
}
