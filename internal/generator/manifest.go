package generator

import (
	"encoding/json"
	"fmt"
	"sort"
)

const manifestPath = "build-manifest.json"

// Manifest summarises one build. It deliberately carries no wall-clock
// timestamp so unchanged sources produce byte-identical output.
type Manifest struct {
	Articles  int                `json:"articles"`
	Undated   int                `json:"undated"`
	Drafts    int                `json:"drafts"`
	Artifacts []ManifestArtifact `json:"artifacts"`
}

// ManifestArtifact records one written output with its content digest.
type ManifestArtifact struct {
	Path     string `json:"path"`
	Category string `json:"category"`
	Checksum string `json:"checksum"`
}

func buildManifest(articles, undated, drafts int, artifacts []ManifestArtifact) ([]byte, error) {
	sorted := append([]ManifestArtifact(nil), artifacts...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	manifest := Manifest{
		Articles:  articles,
		Undated:   undated,
		Drafts:    drafts,
		Artifacts: sorted,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("generator: marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}
