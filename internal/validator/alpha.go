package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/qiita-spots/qtp-diversity/internal/logger"
	"github.com/qiita-spots/qtp-diversity/internal/parser"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// AlphaVectorValidator validates alpha diversity vector artifacts
type AlphaVectorValidator struct{}

// NewAlphaVectorValidator creates a new AlphaVectorValidator
func NewAlphaVectorValidator() *AlphaVectorValidator {
	return &AlphaVectorValidator{}
}

// Validate parses the alpha vector and checks that the first-column
// sample identifiers are a subset of the metadata identifiers. A line
// that does not split into exactly two tab-separated fields is reported
// as a format failure before any identifier check runs.
func (v *AlphaVectorValidator) Validate(ctx context.Context, files types.FileGroup, metadata types.SampleMetadata, outDir string) (*types.Result, error) {
	fp := files.First(types.RolePlainText)
	if fp == "" {
		return nil, fmt.Errorf("%w: plain_text", ErrMissingFile)
	}

	av, err := parser.ReadAlphaVector(fp)
	if err != nil {
		if errors.Is(err, parser.ErrFormat) {
			return types.Failure("The alpha vector format is incorrect"), nil
		}
		return nil, err
	}
	logger.Debug().Int("samples", len(av.Samples)).Str("file", fp).Msg("Parsed alpha vector")

	if !CheckSubset(av.SampleIDSet(), metadata) {
		return types.Failure("The alpha vector contains samples not present in the metadata"), nil
	}

	return types.Successful(types.NewArtifactInfo(types.ArtifactTypeAlphaVector, artifactFiles(files))), nil
}
