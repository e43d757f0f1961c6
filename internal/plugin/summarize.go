package plugin

import (
	"context"
	"encoding/json"

	"github.com/qiita-spots/qtp-diversity/internal/logger"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// GenerateHTMLSummary renders the HTML summary of an existing artifact
// and persists its location back to the artifact record.
//
// Renderer failures propagate as errors; persistence failures are
// downgraded to a soft failure so the job runner can report them.
func (p *Plugin) GenerateHTMLSummary(ctx context.Context, artifactID string, params Parameters, outDir string) (*types.Result, error) {
	if !hasMetadataSource(params) {
		return types.Failure("Missing metadata information"), nil
	}

	record, err := p.store.Artifact(ctx, artifactID)
	if err != nil {
		return nil, err
	}

	// The unknown-type message enumerates the renderer registry's keys,
	// which legitimately differ from the validator registry's
	renderer, err := p.renderers.Resolve(record.Type)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	logger.Debug().Str("artifact", artifactID).Str("type", string(record.Type)).Msg("Collecting metadata")
	metadata, soft, err := p.resolveMetadata(ctx, params)
	if err != nil {
		return nil, err
	}
	if soft != nil {
		return soft, nil
	}

	rendered, err := renderer.Render(ctx, record.Files, metadata, outDir)
	if err != nil {
		return nil, err
	}

	// A bare path when self-contained, a {"html", "dir"} object when a
	// support directory exists
	value := rendered.HTMLPath
	if rendered.SupportDir != "" {
		encoded, err := json.Marshal(map[string]string{
			"html": rendered.HTMLPath,
			"dir":  rendered.SupportDir,
		})
		if err != nil {
			return nil, err
		}
		value = string(encoded)
	}

	if err := p.store.PatchArtifact(ctx, artifactID, "add", "/html_summary/", value); err != nil {
		logger.Warn().Err(err).Str("artifact", artifactID).Msg("Failed to persist html summary")
		return types.Failure(err.Error()), nil
	}

	return &types.Result{Success: true}, nil
}
