package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileGroup(t *testing.T) {
	tests := []struct {
		name      string
		group     FileGroup
		role      string
		wantFirst string
		wantHas   bool
	}{
		{
			name:      "role with one path",
			group:     FileGroup{RolePlainText: []string{"/data/dm.txt"}},
			role:      RolePlainText,
			wantFirst: "/data/dm.txt",
			wantHas:   true,
		},
		{
			name:      "role with several paths",
			group:     FileGroup{RolePlainText: []string{"/data/a.txt", "/data/b.txt"}},
			role:      RolePlainText,
			wantFirst: "/data/a.txt",
			wantHas:   true,
		},
		{
			name:      "absent role",
			group:     FileGroup{RolePlainText: []string{"/data/dm.txt"}},
			role:      RoleQza,
			wantFirst: "",
			wantHas:   false,
		},
		{
			name:      "role with empty slice",
			group:     FileGroup{RoleQza: []string{}},
			role:      RoleQza,
			wantFirst: "",
			wantHas:   false,
		},
		{
			name:      "nil group",
			group:     nil,
			role:      RolePlainText,
			wantFirst: "",
			wantHas:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFirst, tt.group.First(tt.role))
			assert.Equal(t, tt.wantHas, tt.group.Has(tt.role))
		})
	}
}

func TestSampleMetadataHas(t *testing.T) {
	m := SampleMetadata{"s1": {"col": "v"}}
	assert.True(t, m.Has("s1"))
	assert.False(t, m.Has("s2"))
	assert.False(t, SampleMetadata(nil).Has("s1"))
}

func TestArtifactInfoAddFile(t *testing.T) {
	info := NewArtifactInfo(ArtifactTypeDistanceMatrix, []FileEntry{
		{Path: "/data/dm.txt", Role: RolePlainText},
	})
	info.AddFile("/out/index.html", RoleHTMLSummary)

	assert.Equal(t, ArtifactTypeDistanceMatrix, info.Type)
	assert.Len(t, info.Files, 2)
	assert.Equal(t, FileEntry{Path: "/out/index.html", Role: RoleHTMLSummary}, info.Files[1])
}

func TestResultConstructors(t *testing.T) {
	failed := Failure("Missing metadata information")
	assert.False(t, failed.Success)
	assert.Equal(t, "Missing metadata information", failed.Error)
	assert.Nil(t, failed.Artifacts)

	ok := Successful(NewArtifactInfo(ArtifactTypeAlphaVector, nil))
	assert.True(t, ok.Success)
	assert.Empty(t, ok.Error)
	assert.Len(t, ok.Artifacts, 1)
}
