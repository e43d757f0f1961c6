package validator

import (
	"context"

	"github.com/qiita-spots/qtp-diversity/internal/logger"
	"github.com/qiita-spots/qtp-diversity/internal/manifest"
	"github.com/qiita-spots/qtp-diversity/internal/registry"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// The legacy QIIME1 composite artifacts are validated purely by presence
// checks over the directory tree, expressed as manifests. Entry order is
// load-bearing: it decides which message surfaces when several paths are
// missing at once, and it differs between the three shapes.

// distanceMatrixManifest describes a distance matrix directory with
// emperor PCoA plots
var distanceMatrixManifest = manifest.Manifest{
	{Pattern: "log_*", Message: "Missing log file"},
	{Pattern: "*_dm.txt", Message: "Missing distance matrix file"},
	{Pattern: "*_pc.txt", Message: "Missing principal coordinates file"},
	{Pattern: "*_emperor_pcoa_plot", Message: "Missing emperor plots directory"},
	{Pattern: "*_emperor_pcoa_plot/index.html", Message: "Missing emperor index HTML file"},
	{Pattern: "*_emperor_pcoa_plot/emperor_required_resources", Message: "Missing emperor required resources directory"},
}

// rarefactionCurvesManifest describes an alpha rarefaction output
// directory
var rarefactionCurvesManifest = manifest.Manifest{
	{Pattern: "log_*", Message: "Missing log file"},
	{Pattern: "alpha_div_collated", Message: "Missing alpha_div_collated directory"},
	{Pattern: "alpha_rarefaction_plots", Message: "Missing alpha_rarefaction_plots directory"},
	{Pattern: "alpha_div_collated/*", Message: "Empty alpha_div_collated directory"},
	{Pattern: "alpha_rarefaction_plots/rarefaction_plots.html", Message: "Missing rarefaction plots HTML file"},
	{Pattern: "alpha_rarefaction_plots/average_plots", Message: "Missing average plots directory"},
	{Pattern: "alpha_rarefaction_plots/average_plots/*", Message: "Empty average plots directory"},
}

// taxaSummaryManifest describes a taxa summary directory with its chart
// bundle
var taxaSummaryManifest = manifest.Manifest{
	{Pattern: "log_*", Message: "Missing log file"},
	{Pattern: "table_L*.biom", Message: "Missing summarized biom files"},
	{Pattern: "table_L*.txt", Message: "Missing summarized txt files"},
	{Pattern: "taxa_summary_plots", Message: "Missing taxonomy summary plots directory"},
	{Pattern: "taxa_summary_plots/area_charts.html", Message: "Missing area charts file"},
	{Pattern: "taxa_summary_plots/bar_charts.html", Message: "Missing bar charts file"},
	{Pattern: "taxa_summary_plots/charts", Message: "Missing charts directory"},
	{Pattern: "taxa_summary_plots/charts/*", Message: "Empty charts directory"},
	{Pattern: "taxa_summary_plots/css", Message: "Missing css directory"},
	{Pattern: "taxa_summary_plots/css/qiime_style.css", Message: "Missing qiime style css file"},
	{Pattern: "taxa_summary_plots/js", Message: "Missing js directory"},
	{Pattern: "taxa_summary_plots/js/overlib.js", Message: "Missing overlib js file"},
	{Pattern: "taxa_summary_plots/raw_data", Message: "Missing raw data directory"},
	{Pattern: "taxa_summary_plots/raw_data/*", Message: "Empty raw data directory"},
}

// NewLegacyRegistry returns the registry of directory-manifest validated
// artifact types. These types are disjoint from the per-sample-identifier
// registry; each concrete type belongs to exactly one style.
func NewLegacyRegistry() *registry.Registry[manifest.Manifest] {
	r := registry.New[manifest.Manifest]()
	r.Register(types.ArtifactTypeDistanceMatrix, distanceMatrixManifest)
	r.Register(types.ArtifactTypeRarefactionCurves, rarefactionCurvesManifest)
	r.Register(types.ArtifactTypeTaxaSummary, taxaSummaryManifest)
	return r
}

// ValidateDirectory runs the manifest for the given legacy type against
// the artifact directory. On success the whole directory is wrapped as a
// single opaque artifact file of role "directory".
func ValidateDirectory(ctx context.Context, reg *registry.Registry[manifest.Manifest], t types.ArtifactType, dir string) (*types.Result, error) {
	m, err := reg.Resolve(t)
	if err != nil {
		return types.Failure(err.Error()), nil
	}

	ok, msg := manifest.Check(dir, m)
	if !ok {
		logger.Debug().Str("dir", dir).Str("type", string(t)).Str("reason", msg).Msg("Directory manifest check failed")
		return types.Failure(msg), nil
	}

	info := types.NewArtifactInfo(t, []types.FileEntry{{Path: dir, Role: types.RoleDirectory}})
	return types.Successful(info), nil
}
