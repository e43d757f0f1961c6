package validator

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// FeatureDataValidator validates feature data (e.g. taxonomy) artifacts
type FeatureDataValidator struct{}

// NewFeatureDataValidator creates a new FeatureDataValidator
func NewFeatureDataValidator() *FeatureDataValidator {
	return &FeatureDataValidator{}
}

// Validate performs a cheap header-shape check: the first line must
// contain both "Tax" and "ID" tokens, or start with ">" to allow
// FASTA-style files. This catches obviously wrong files without full
// parsing.
func (v *FeatureDataValidator) Validate(ctx context.Context, files types.FileGroup, metadata types.SampleMetadata, outDir string) (*types.Result, error) {
	fp := files.First(types.RolePlainText)
	if fp == "" {
		return nil, fmt.Errorf("%w: plain_text", ErrMissingFile)
	}

	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	header := ""
	if scanner.Scan() {
		header = scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	tabular := strings.Contains(header, "Tax") && strings.Contains(header, "ID")
	if !tabular && !strings.HasPrefix(header, ">") {
		return types.Failure("The FeatureData file format is incorrect"), nil
	}

	return types.Successful(types.NewArtifactInfo(types.ArtifactTypeFeatureData, artifactFiles(files))), nil
}

// SampleDataValidator validates sample data artifacts
type SampleDataValidator struct{}

// NewSampleDataValidator creates a new SampleDataValidator
func NewSampleDataValidator() *SampleDataValidator {
	return &SampleDataValidator{}
}

// Validate requires the qza companion file to be present; unlike the
// other artifact types it is not optional for SampleData
func (v *SampleDataValidator) Validate(ctx context.Context, files types.FileGroup, metadata types.SampleMetadata, outDir string) (*types.Result, error) {
	if !files.Has(types.RolePlainText) {
		return nil, fmt.Errorf("%w: plain_text", ErrMissingFile)
	}
	if !files.Has(types.RoleQza) {
		return types.Failure("SampleData artifacts require a qza file"), nil
	}

	return types.Successful(types.NewArtifactInfo(types.ArtifactTypeSampleData, artifactFiles(files))), nil
}
