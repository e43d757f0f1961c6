package plugin

import (
	"github.com/qiita-spots/qtp-diversity/internal/config"
	"github.com/qiita-spots/qtp-diversity/internal/types"
	"gopkg.in/yaml.v3"
)

// FileRole declares a file role an artifact type accepts and whether it
// is required at validation time
type FileRole struct {
	Role     string `yaml:"role" json:"role"`
	Required bool   `yaml:"required" json:"required"`
}

// ArtifactTypeSpec is a single artifact type registration
type ArtifactTypeSpec struct {
	Name        types.ArtifactType `yaml:"name" json:"name"`
	Description string             `yaml:"description" json:"description"`
	FileRoles   []FileRole         `yaml:"file_roles" json:"file_roles"`
}

// Descriptor is the plugin registration document sent to the host
// platform: the plugin identity and the artifact types it owns
type Descriptor struct {
	Name          string             `yaml:"name" json:"name"`
	Version       string             `yaml:"version" json:"version"`
	Description   string             `yaml:"description" json:"description"`
	ArtifactTypes []ArtifactTypeSpec `yaml:"artifact_types" json:"artifact_types"`
}

// NewDescriptor builds the plugin descriptor from the configuration
func NewDescriptor(cfg *config.Config) *Descriptor {
	return &Descriptor{
		Name:        cfg.Plugin.Name,
		Version:     cfg.Plugin.Version,
		Description: cfg.Plugin.Description,
		ArtifactTypes: []ArtifactTypeSpec{
			{
				Name:        types.ArtifactTypeDistanceMatrix,
				Description: "Distance matrix holding pairwise distance between samples",
				FileRoles: []FileRole{
					{Role: types.RolePlainText, Required: true},
					{Role: types.RoleQza, Required: false},
				},
			},
			{
				Name:        types.ArtifactTypeOrdinationResults,
				Description: "Ordination results",
				FileRoles: []FileRole{
					{Role: types.RolePlainText, Required: true},
					{Role: types.RoleQza, Required: false},
				},
			},
			{
				Name:        types.ArtifactTypeAlphaVector,
				Description: "Alpha Diversity per sample results",
				FileRoles: []FileRole{
					{Role: types.RolePlainText, Required: true},
					{Role: types.RoleQza, Required: false},
				},
			},
			{
				Name:        types.ArtifactTypeFeatureData,
				Description: "Feature data",
				FileRoles: []FileRole{
					{Role: types.RolePlainText, Required: true},
					{Role: types.RoleQza, Required: false},
				},
			},
			{
				Name:        types.ArtifactTypeSampleData,
				Description: "Sample data",
				FileRoles: []FileRole{
					{Role: types.RolePlainText, Required: true},
					{Role: types.RoleQza, Required: true},
				},
			},
		},
	}
}

// YAML renders the descriptor as YAML
func (d *Descriptor) YAML() (string, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
