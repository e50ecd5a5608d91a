// Package regions loads template region definitions: the ordered placement
// polygons an operator drew over each product template image.
package regions

import (
	"encoding/json"
	"fmt"
	"os"

	"gangsheet-renderer/internal/mask"
)

// TemplateDef describes one product template: its base image and the ordered
// placement polygons. Region 0 is the crop/fit region; later regions use the
// fill-height policy.
type TemplateDef struct {
	Name    string         `json:"name"`
	Image   string         `json:"image"`
	Regions [][]mask.Point `json:"regions"`
}

// Load parses a regions.json file and validates every polygon up front, so a
// malformed region fails at startup rather than mid-batch.
func Load(path string) ([]TemplateDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regions: read %s: %w", path, err)
	}

	var defs []TemplateDef
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("regions: parse %s: %w", path, err)
	}

	for _, def := range defs {
		for i, poly := range def.Regions {
			if err := mask.Validate(poly); err != nil {
				return nil, fmt.Errorf("regions: template %q region %d: %w", def.Name, i, err)
			}
		}
	}
	return defs, nil
}

// Find returns the definition for a template name.
func Find(defs []TemplateDef, name string) (TemplateDef, bool) {
	for _, def := range defs {
		if def.Name == name {
			return def, true
		}
	}
	return TemplateDef{}, false
}
