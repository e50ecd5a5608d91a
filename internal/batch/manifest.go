package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry records one rendered mockup in the output manifest.
type ManifestEntry struct {
	Template string `json:"template"`
	Design   string `json:"design"`
	PNG      string `json:"png"`
	Preview  string `json:"preview"`
	Error    string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json describing every job's outcome.
func WriteManifest(path string, jobs []Job, results []Result) error {
	entries := make([]ManifestEntry, len(jobs))
	for i, job := range jobs {
		e := ManifestEntry{
			Template: job.Template.Name,
			Design:   job.DesignPath,
		}
		if results[i].Success {
			e.PNG = job.OutName + ".png"
			e.Preview = job.OutName + ".webp"
		} else {
			e.Error = results[i].Error
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
