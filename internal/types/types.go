// Package types defines the shared data model for diversity artifacts.
package types

// ArtifactType identifies the kind of artifact being validated or summarized
type ArtifactType string

const (
	// ArtifactTypeDistanceMatrix represents a pairwise sample distance matrix
	ArtifactTypeDistanceMatrix ArtifactType = "distance_matrix"
	// ArtifactTypeOrdinationResults represents ordination coordinates
	ArtifactTypeOrdinationResults ArtifactType = "ordination_results"
	// ArtifactTypeAlphaVector represents per-sample alpha diversity scores
	ArtifactTypeAlphaVector ArtifactType = "alpha_vector"
	// ArtifactTypeFeatureData represents feature (e.g. taxonomy) data
	ArtifactTypeFeatureData ArtifactType = "FeatureData"
	// ArtifactTypeSampleData represents sample data
	ArtifactTypeSampleData ArtifactType = "SampleData"
	// ArtifactTypeRarefactionCurves represents a legacy QIIME1 rarefaction
	// curves directory
	ArtifactTypeRarefactionCurves ArtifactType = "rarefaction_curves"
	// ArtifactTypeTaxaSummary represents a legacy QIIME1 taxa summary
	// directory
	ArtifactTypeTaxaSummary ArtifactType = "taxa_summary"
)

// File role labels used in FileGroup and ArtifactInfo
const (
	RolePlainText      = "plain_text"
	RoleQza            = "qza"
	RoleDirectory      = "directory"
	RoleHTMLSummary    = "html_summary"
	RoleHTMLSummaryDir = "html_summary_dir"
)

// FileGroup maps a file role label to an ordered sequence of file paths.
// For the artifact types in this plugin the plain_text role, when required,
// holds exactly one path and the first element is authoritative.
type FileGroup map[string][]string

// First returns the first path registered under the given role, or an
// empty string when the role is absent or empty
func (g FileGroup) First(role string) string {
	paths := g[role]
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}

// Has reports whether at least one path is registered under the given role
func (g FileGroup) Has(role string) bool {
	return len(g[role]) > 0
}

// SampleMetadata maps a sample identifier to its metadata record. Only the
// key set matters to validation; the field values are opaque.
type SampleMetadata map[string]map[string]interface{}

// Has reports whether the metadata contains the given sample identifier
func (m SampleMetadata) Has(id string) bool {
	_, ok := m[id]
	return ok
}

// FileEntry is a single (path, role) pair in an artifact descriptor
type FileEntry struct {
	Path string `json:"path" yaml:"path"`
	Role string `json:"role" yaml:"role"`
}

// ArtifactInfo describes a validated artifact: its type and the ordered
// files that constitute it, possibly extended with summary outputs
type ArtifactInfo struct {
	// Name of the artifact; empty when the host assigns one
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Type is the artifact type tag
	Type ArtifactType `json:"artifact_type" yaml:"artifact_type"`
	// Files is the ordered list of (path, role) pairs
	Files []FileEntry `json:"files" yaml:"files"`
}

// NewArtifactInfo creates an ArtifactInfo with the given type and files
func NewArtifactInfo(t ArtifactType, files []FileEntry) *ArtifactInfo {
	return &ArtifactInfo{Type: t, Files: files}
}

// AddFile appends a (path, role) pair to the artifact's file list
func (a *ArtifactInfo) AddFile(path, role string) {
	a.Files = append(a.Files, FileEntry{Path: path, Role: role})
}

// Result represents the outcome of a validation or summary operation.
// Success=false always pairs with Artifacts=nil and a non-empty Error;
// Success=true pairs with an empty Error.
type Result struct {
	// Success reports whether the operation succeeded
	Success bool `json:"success" yaml:"success"`
	// Artifacts holds the artifact descriptors when successful
	Artifacts []*ArtifactInfo `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	// Error holds the failure message when unsuccessful
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failure creates a failed Result with the given message
func Failure(msg string) *Result {
	return &Result{Success: false, Error: msg}
}

// Successful creates a successful Result wrapping a single artifact
func Successful(info *ArtifactInfo) *Result {
	return &Result{Success: true, Artifacts: []*ArtifactInfo{info}}
}
