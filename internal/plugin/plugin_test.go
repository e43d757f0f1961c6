package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qiita-spots/qtp-diversity/internal/config"
	"github.com/qiita-spots/qtp-diversity/internal/qiita"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

const dmContent = "\ts1\ts2\ts3\n" +
	"s1\t0.0\t0.85\t0.25\n" +
	"s2\t0.85\t0.0\t0.5\n" +
	"s3\t0.25\t0.5\t0.0\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func metadata(ids ...string) types.SampleMetadata {
	m := make(types.SampleMetadata, len(ids))
	for _, id := range ids {
		m[id] = map[string]interface{}{"treatment": "control"}
	}
	return m
}

// newTestPlugin wires a Plugin against the in-memory development host
func newTestPlugin(t *testing.T) (*Plugin, *qiita.Server) {
	t.Helper()
	srv := qiita.NewServer()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return New(&config.Config{}, qiita.NewClientForURL(ts.URL)), srv
}

func TestValidateMissingMetadataSource(t *testing.T) {
	p, _ := newTestPlugin(t)

	result, err := p.Validate(context.Background(), Parameters{
		ArtifactType: types.ArtifactTypeDistanceMatrix,
		Files:        types.FileGroup{types.RolePlainText: []string{"/tmp/dm.txt"}},
	}, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success || result.Error != "Missing metadata information" {
		t.Errorf("result = (%v, %q), want missing metadata failure", result.Success, result.Error)
	}
}

func TestValidateBothMetadataSources(t *testing.T) {
	p, srv := newTestPlugin(t)
	template := srv.AddPrepTemplate(metadata("s1", "s2", "s3"))
	analysis := srv.AddAnalysis(metadata("s1", "s2", "s3"))
	fp := writeFile(t, "dm.txt", dmContent)

	result, err := p.Validate(context.Background(), Parameters{
		PrepTemplate: template,
		Analysis:     analysis,
		ArtifactType: types.ArtifactTypeDistanceMatrix,
		Files:        types.FileGroup{types.RolePlainText: []string{fp}},
	}, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success || result.Error != "Only one metadata source can be provided" {
		t.Errorf("result = (%v, %q), want single-source failure", result.Success, result.Error)
	}
}

func TestValidateUnknownType(t *testing.T) {
	p, srv := newTestPlugin(t)
	template := srv.AddPrepTemplate(metadata("s1"))

	result, err := p.Validate(context.Background(), Parameters{
		PrepTemplate: template,
		ArtifactType: "BIOM",
		Files:        types.FileGroup{types.RolePlainText: []string{"/tmp/x.txt"}},
	}, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Unknown artifact type BIOM. Supported types: FeatureData, SampleData, alpha_vector, distance_matrix, ordination_results"
	if result.Success || result.Error != want {
		t.Errorf("result = (%v, %q), want (false, %q)", result.Success, result.Error, want)
	}
}

func TestValidateDistanceMatrixWithFusedSummary(t *testing.T) {
	p, srv := newTestPlugin(t)
	template := srv.AddPrepTemplate(metadata("s1", "s2", "s3"))
	fp := writeFile(t, "dm.txt", dmContent)
	outDir := t.TempDir()

	result, err := p.Validate(context.Background(), Parameters{
		PrepTemplate: template,
		ArtifactType: types.ArtifactTypeDistanceMatrix,
		Files:        types.FileGroup{types.RolePlainText: []string{fp}},
	}, outDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("validation failed: %q", result.Error)
	}
	if len(result.Artifacts) != 1 {
		t.Fatalf("got %d artifacts, want 1", len(result.Artifacts))
	}

	files := result.Artifacts[0].Files
	if len(files) != 2 {
		t.Fatalf("artifact files = %+v, want plain_text plus html_summary", files)
	}
	if files[1].Role != types.RoleHTMLSummary {
		t.Errorf("files[1].Role = %q, want html_summary", files[1].Role)
	}
	if _, err := os.Stat(files[1].Path); err != nil {
		t.Errorf("summary file not written: %v", err)
	}
}

func TestValidateOrdinationAppendsSupportDir(t *testing.T) {
	p, srv := newTestPlugin(t)
	template := srv.AddPrepTemplate(metadata("s1", "s2"))
	content := "Eigvals\t2\n0.5\t0.3\n\n" +
		"Proportion explained\t2\n0.6\t0.4\n\n" +
		"Site\t2\t2\ns1\t0.1\t0.2\ns2\t0.3\t0.4\n"
	fp := writeFile(t, "pcoa.txt", content)

	result, err := p.Validate(context.Background(), Parameters{
		PrepTemplate: template,
		ArtifactType: types.ArtifactTypeOrdinationResults,
		Files:        types.FileGroup{types.RolePlainText: []string{fp}},
	}, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("validation failed: %q", result.Error)
	}

	files := result.Artifacts[0].Files
	if len(files) != 3 {
		t.Fatalf("artifact files = %+v, want plain_text, html_summary and html_summary_dir", files)
	}
	if files[2].Role != types.RoleHTMLSummaryDir {
		t.Errorf("files[2].Role = %q, want html_summary_dir", files[2].Role)
	}
}

// FeatureData validates but has no renderer, so no summary is fused
func TestValidateFeatureDataSkipsSummary(t *testing.T) {
	p, srv := newTestPlugin(t)
	template := srv.AddPrepTemplate(metadata("s1"))
	fp := writeFile(t, "taxonomy.txt", "Feature ID\tTaxonomy\nf1\tk__Bacteria\n")

	result, err := p.Validate(context.Background(), Parameters{
		PrepTemplate: template,
		ArtifactType: types.ArtifactTypeFeatureData,
		Files:        types.FileGroup{types.RolePlainText: []string{fp}},
	}, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("validation failed: %q", result.Error)
	}
	for _, f := range result.Artifacts[0].Files {
		if f.Role == types.RoleHTMLSummary {
			t.Errorf("unexpected html_summary in %+v", result.Artifacts[0].Files)
		}
	}
}

func TestValidateAnalysisMetadataSource(t *testing.T) {
	p, srv := newTestPlugin(t)
	analysis := srv.AddAnalysis(metadata("s1", "s2", "s3"))
	fp := writeFile(t, "dm.txt", dmContent)

	result, err := p.Validate(context.Background(), Parameters{
		Analysis:     analysis,
		ArtifactType: types.ArtifactTypeDistanceMatrix,
		Files:        types.FileGroup{types.RolePlainText: []string{fp}},
	}, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("validation failed: %q", result.Error)
	}
}

func TestValidateLegacyDirectory(t *testing.T) {
	p, srv := newTestPlugin(t)
	template := srv.AddPrepTemplate(metadata("s1"))

	dir := t.TempDir()
	for _, name := range []string{
		"log_20230201.txt",
		"unweighted_unifrac_dm.txt",
		"unweighted_unifrac_pc.txt",
		filepath.Join("unweighted_unifrac_emperor_pcoa_plot", "index.html"),
		filepath.Join("unweighted_unifrac_emperor_pcoa_plot", "emperor_required_resources", "style.css"),
	} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	result, err := p.Validate(context.Background(), Parameters{
		PrepTemplate: template,
		ArtifactType: types.ArtifactTypeDistanceMatrix,
		Files:        types.FileGroup{types.RoleDirectory: []string{dir}},
	}, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("validation failed: %q", result.Error)
	}
	files := result.Artifacts[0].Files
	if len(files) != 1 || files[0].Path != dir || files[0].Role != types.RoleDirectory {
		t.Errorf("artifact files = %+v, want [(%s, directory)]", files, dir)
	}
}

func TestGenerateHTMLSummarySelfContained(t *testing.T) {
	p, srv := newTestPlugin(t)
	template := srv.AddPrepTemplate(metadata("s1", "s2"))
	fp := writeFile(t, "alpha.txt", "\tshannon\ns1\t4.2\ns2\t3.8\n")
	artifactID := srv.AddArtifact(&qiita.ArtifactRecord{
		Type:  types.ArtifactTypeAlphaVector,
		Files: types.FileGroup{types.RolePlainText: []string{fp}},
	})
	outDir := t.TempDir()

	result, err := p.GenerateHTMLSummary(context.Background(), artifactID, Parameters{PrepTemplate: template}, outDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("summary generation failed: %q", result.Error)
	}

	// Self-contained summaries persist the bare HTML path
	value, ok := srv.HTMLSummary(artifactID)
	if !ok {
		t.Fatal("no html summary persisted")
	}
	want := filepath.Join(outDir, "index.html")
	if value != want {
		t.Errorf("persisted value = %q, want %q", value, want)
	}
}

func TestGenerateHTMLSummaryWithSupportDir(t *testing.T) {
	p, srv := newTestPlugin(t)
	template := srv.AddPrepTemplate(metadata("s1", "s2"))
	content := "Eigvals\t2\n0.5\t0.3\n\n" +
		"Proportion explained\t2\n0.6\t0.4\n\n" +
		"Site\t2\t2\ns1\t0.1\t0.2\ns2\t0.3\t0.4\n"
	fp := writeFile(t, "pcoa.txt", content)
	artifactID := srv.AddArtifact(&qiita.ArtifactRecord{
		Type:  types.ArtifactTypeOrdinationResults,
		Files: types.FileGroup{types.RolePlainText: []string{fp}},
	})
	outDir := t.TempDir()

	result, err := p.GenerateHTMLSummary(context.Background(), artifactID, Parameters{PrepTemplate: template}, outDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("summary generation failed: %q", result.Error)
	}

	value, ok := srv.HTMLSummary(artifactID)
	if !ok {
		t.Fatal("no html summary persisted")
	}
	var persisted map[string]string
	if err := json.Unmarshal([]byte(value), &persisted); err != nil {
		t.Fatalf("persisted value %q is not JSON: %v", value, err)
	}
	if persisted["html"] != filepath.Join(outDir, "index.html") {
		t.Errorf("persisted html = %q", persisted["html"])
	}
	if !strings.HasSuffix(persisted["dir"], "emperor_support_files") {
		t.Errorf("persisted dir = %q, want emperor support dir", persisted["dir"])
	}
}

func TestGenerateHTMLSummaryUnknownType(t *testing.T) {
	p, srv := newTestPlugin(t)
	template := srv.AddPrepTemplate(metadata("s1"))
	artifactID := srv.AddArtifact(&qiita.ArtifactRecord{
		Type:  types.ArtifactTypeFeatureData,
		Files: types.FileGroup{types.RolePlainText: []string{"/tmp/taxonomy.txt"}},
	})

	result, err := p.GenerateHTMLSummary(context.Background(), artifactID, Parameters{PrepTemplate: template}, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Unknown artifact type FeatureData. Supported types: alpha_vector, distance_matrix, ordination_results"
	if result.Success || result.Error != want {
		t.Errorf("result = (%v, %q), want (false, %q)", result.Success, result.Error, want)
	}
}

func TestGenerateHTMLSummaryMissingArtifact(t *testing.T) {
	p, srv := newTestPlugin(t)
	template := srv.AddPrepTemplate(metadata("s1"))

	_, err := p.GenerateHTMLSummary(context.Background(), "missing", Parameters{PrepTemplate: template}, t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
}

// failingPatchStore wraps a Store and forces PatchArtifact to fail
type failingPatchStore struct {
	Store
}

func (s *failingPatchStore) PatchArtifact(ctx context.Context, id, op, fieldPath, value string) error {
	return fmt.Errorf("store unavailable")
}

func TestGenerateHTMLSummaryPatchFailureIsSoft(t *testing.T) {
	srv := qiita.NewServer()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	p := New(&config.Config{}, &failingPatchStore{Store: qiita.NewClientForURL(ts.URL)})

	template := srv.AddPrepTemplate(metadata("s1", "s2"))
	fp := writeFile(t, "alpha.txt", "\tshannon\ns1\t4.2\ns2\t3.8\n")
	artifactID := srv.AddArtifact(&qiita.ArtifactRecord{
		Type:  types.ArtifactTypeAlphaVector,
		Files: types.FileGroup{types.RolePlainText: []string{fp}},
	})

	result, err := p.GenerateHTMLSummary(context.Background(), artifactID, Parameters{PrepTemplate: template}, t.TempDir())
	if err != nil {
		t.Fatalf("persistence failure should be soft, got error: %v", err)
	}
	if result.Success {
		t.Fatal("expected soft failure when persistence fails")
	}
	if result.Error != "store unavailable" {
		t.Errorf("error = %q, want %q", result.Error, "store unavailable")
	}
}

func TestNewDescriptor(t *testing.T) {
	cfg := &config.Config{}
	cfg.Plugin.Name = "Diversity types"
	cfg.Plugin.Version = "2023.02"
	cfg.Plugin.Description = "Diversity artifacts type plugin"

	d := NewDescriptor(cfg)
	if d.Name != "Diversity types" || d.Version != "2023.02" {
		t.Errorf("descriptor identity = %q %q", d.Name, d.Version)
	}
	if len(d.ArtifactTypes) != 5 {
		t.Fatalf("got %d artifact types, want 5", len(d.ArtifactTypes))
	}

	var sampleData *ArtifactTypeSpec
	for i := range d.ArtifactTypes {
		if d.ArtifactTypes[i].Name == types.ArtifactTypeSampleData {
			sampleData = &d.ArtifactTypes[i]
		}
	}
	if sampleData == nil {
		t.Fatal("SampleData registration missing")
	}
	var qzaRequired bool
	for _, fr := range sampleData.FileRoles {
		if fr.Role == types.RoleQza && fr.Required {
			qzaRequired = true
		}
	}
	if !qzaRequired {
		t.Error("SampleData must require a qza file")
	}

	out, err := d.YAML()
	if err != nil {
		t.Fatalf("YAML() error: %v", err)
	}
	if !strings.Contains(out, "name: Diversity types") {
		t.Errorf("YAML output missing plugin name:\n%s", out)
	}
}
