package plugin

import (
	"context"

	"github.com/qiita-spots/qtp-diversity/internal/logger"
	"github.com/qiita-spots/qtp-diversity/internal/types"
	"github.com/qiita-spots/qtp-diversity/internal/validator"
)

// Validate checks that a newly produced artifact is structurally complete
// and consistent with the experiment's sample metadata. On success the
// artifact descriptor is augmented with a freshly rendered HTML summary,
// saving the host UI a second round trip.
//
// Soft failures (unknown type, missing metadata reference, structural or
// identifier violations) are reported inside the Result; collaborator
// failures (metadata NotFound, parse errors) and renderer failures during
// the fused summary step are returned as errors and fail the job hard.
func (p *Plugin) Validate(ctx context.Context, params Parameters, outDir string) (*types.Result, error) {
	if !hasMetadataSource(params) {
		return types.Failure("Missing metadata information"), nil
	}

	// The legacy QIIME1 composite artifacts arrive as a single opaque
	// directory; everything else arrives as a per-role file group
	if params.Files.Has(types.RoleDirectory) {
		return p.validateDirectory(ctx, params)
	}

	// Type lookup happens before the metadata fetch: metadata content is
	// irrelevant to whether the type is registered
	v, err := p.validators.Resolve(params.ArtifactType)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	logger.Debug().Str("type", string(params.ArtifactType)).Msg("Collecting metadata")
	metadata, soft, err := p.resolveMetadata(ctx, params)
	if err != nil {
		return nil, err
	}
	if soft != nil {
		return soft, nil
	}

	result, err := v.Validate(ctx, params.Files, metadata, outDir)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return result, nil
	}

	// Fuse the summary generation into the validation job. A renderer
	// failure here is fatal, unlike the validator's own soft path.
	renderer, err := p.renderers.Resolve(params.ArtifactType)
	if err != nil {
		logger.Debug().Str("type", string(params.ArtifactType)).Msg("No summary renderer registered, skipping summary")
		return result, nil
	}

	rendered, err := renderer.Render(ctx, params.Files, metadata, outDir)
	if err != nil {
		return nil, err
	}
	for _, info := range result.Artifacts {
		info.AddFile(rendered.HTMLPath, types.RoleHTMLSummary)
		if rendered.SupportDir != "" {
			info.AddFile(rendered.SupportDir, types.RoleHTMLSummaryDir)
		}
	}

	return result, nil
}

// validateDirectory runs the manifest-based validation flow for the
// legacy directory artifacts. The metadata reference is still required,
// but the manifests only confirm presence of paths, so no metadata
// content is consulted and no summary is fused.
func (p *Plugin) validateDirectory(ctx context.Context, params Parameters) (*types.Result, error) {
	dir := params.Files.First(types.RoleDirectory)
	return validator.ValidateDirectory(ctx, p.legacy, params.ArtifactType, dir)
}
