// Package plugin implements the type plugin orchestrators: artifact
// validation and HTML summary generation, dispatched over the artifact
// type registries.
package plugin

import (
	"context"

	"github.com/qiita-spots/qtp-diversity/internal/config"
	"github.com/qiita-spots/qtp-diversity/internal/manifest"
	"github.com/qiita-spots/qtp-diversity/internal/qiita"
	"github.com/qiita-spots/qtp-diversity/internal/registry"
	"github.com/qiita-spots/qtp-diversity/internal/summary"
	"github.com/qiita-spots/qtp-diversity/internal/types"
	"github.com/qiita-spots/qtp-diversity/internal/validator"
)

// Store is the host platform collaborator consumed by the orchestrators:
// metadata fetching plus artifact record access and partial updates
type Store interface {
	PrepTemplateMetadata(ctx context.Context, id string) (types.SampleMetadata, error)
	AnalysisMetadata(ctx context.Context, id string) (types.SampleMetadata, error)
	Artifact(ctx context.Context, id string) (*qiita.ArtifactRecord, error)
	PatchArtifact(ctx context.Context, id, op, fieldPath, value string) error
}

// Parameters holds the job parameters of a validation or summary call
type Parameters struct {
	// PrepTemplate is the preparation template id; empty when unset
	PrepTemplate string `json:"template"`
	// Analysis is the analysis id; empty when unset
	Analysis string `json:"analysis"`
	// ArtifactType is the artifact type tag
	ArtifactType types.ArtifactType `json:"artifact_type"`
	// Files maps file roles to paths
	Files types.FileGroup `json:"files"`
}

// Plugin wires the registries and the host store into the two
// orchestrators. It is constructed once and passed to the job runner;
// no process-wide registration state is kept.
type Plugin struct {
	store      Store
	validators *registry.Registry[validator.Validator]
	legacy     *registry.Registry[manifest.Manifest]
	renderers  *registry.Registry[summary.Renderer]
}

// New creates a Plugin with the default registries
func New(cfg *config.Config, store Store) *Plugin {
	return &Plugin{
		store:      store,
		validators: validator.NewRegistry(),
		legacy:     validator.NewLegacyRegistry(),
		renderers:  summary.NewRegistry(),
	}
}

// resolveMetadata fetches the sample metadata from the referenced source.
// Exactly one of the prep template and analysis references must be set;
// zero or two sources is a soft failure.
func (p *Plugin) resolveMetadata(ctx context.Context, params Parameters) (types.SampleMetadata, *types.Result, error) {
	switch {
	case params.PrepTemplate != "" && params.Analysis != "":
		return nil, types.Failure("Only one metadata source can be provided"), nil
	case params.PrepTemplate != "":
		metadata, err := p.store.PrepTemplateMetadata(ctx, params.PrepTemplate)
		return metadata, nil, err
	case params.Analysis != "":
		metadata, err := p.store.AnalysisMetadata(ctx, params.Analysis)
		return metadata, nil, err
	default:
		return nil, types.Failure("Missing metadata information"), nil
	}
}

// hasMetadataSource reports whether at least one metadata source
// reference is present
func hasMetadataSource(params Parameters) bool {
	return params.PrepTemplate != "" || params.Analysis != ""
}
