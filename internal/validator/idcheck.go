package validator

import "github.com/qiita-spots/qtp-diversity/internal/types"

// CheckSubset reports whether every artifact identifier is present in the
// metadata. The metadata may cover more samples than the artifact (e.g. a
// superset cohort) but the artifact must never reference an identifier
// absent from the metadata.
func CheckSubset(artifactIDs map[string]struct{}, metadata types.SampleMetadata) bool {
	for id := range artifactIDs {
		if !metadata.Has(id) {
			return false
		}
	}
	return true
}
