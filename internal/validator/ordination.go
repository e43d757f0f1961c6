package validator

import (
	"context"
	"fmt"

	"github.com/qiita-spots/qtp-diversity/internal/logger"
	"github.com/qiita-spots/qtp-diversity/internal/parser"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// OrdinationResultsValidator validates ordination results artifacts
type OrdinationResultsValidator struct{}

// NewOrdinationResultsValidator creates a new OrdinationResultsValidator
func NewOrdinationResultsValidator() *OrdinationResultsValidator {
	return &OrdinationResultsValidator{}
}

// Validate parses the ordination results and checks that the coordinate
// row identifiers are a subset of the metadata identifiers
func (v *OrdinationResultsValidator) Validate(ctx context.Context, files types.FileGroup, metadata types.SampleMetadata, outDir string) (*types.Result, error) {
	fp := files.First(types.RolePlainText)
	if fp == "" {
		return nil, fmt.Errorf("%w: plain_text", ErrMissingFile)
	}

	ord, err := parser.ReadOrdination(fp)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("samples", len(ord.SampleIDs)).Str("file", fp).Msg("Parsed ordination results")

	if !CheckSubset(ord.SampleIDSet(), metadata) {
		return types.Failure("The ordination results contain samples not present in the metadata"), nil
	}

	return types.Successful(types.NewArtifactInfo(types.ArtifactTypeOrdinationResults, artifactFiles(files))), nil
}
