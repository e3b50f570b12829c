package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered dataset in the output manifest.
type ManifestEntry struct {
	Input string `json:"input"`
	Kind  string `json:"kind"`
	Image string `json:"image"`
}

// WriteManifest writes manifest.json for the successful results.
func WriteManifest(path string, results []Result) error {
	var entries []ManifestEntry
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Input: r.Path,
			Kind:  r.Kind,
			Image: r.Image,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
