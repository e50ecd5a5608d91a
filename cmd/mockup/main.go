package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gangsheet-renderer/internal/assets"
	"gangsheet-renderer/internal/batch"
	"gangsheet-renderer/internal/config"
	"gangsheet-renderer/internal/regions"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "config.json", "Path to config.json file")
	templateName := flag.String("template", "", "Template name from regions.json")
	designPath := flag.String("design", "", "Render a single design image")
	designDir := flag.String("designs", "", "Render every design image in a directory")
	watermark := flag.Bool("watermark", false, "Apply the configured watermark")
	templateDir := flag.String("templates", "", "Template directory (overrides config)")
	outputDir := flag.String("output", "", "Output directory (overrides config)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Resolve(config.Flags{
		TemplateDir: *templateDir,
		OutputDir:   *outputDir,
		Workers:     *workers,
	})

	if *templateName == "" {
		fmt.Fprintln(os.Stderr, "Error: -template is required")
		os.Exit(1)
	}

	defs, err := regions.Load(cfg.RegionsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading regions: %v\n", err)
		os.Exit(1)
	}
	def, ok := regions.Find(defs, *templateName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: template %q not defined in %s\n", *templateName, cfg.RegionsFile)
		os.Exit(1)
	}
	pol, ok := cfg.Policy(*templateName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Warning: no policy for %q, using defaults\n", *templateName)
	}

	designs, err := collectDesigns(*designPath, *designDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	jobs := make([]batch.Job, len(designs))
	for i, d := range designs {
		name := strings.TrimSuffix(filepath.Base(d), filepath.Ext(d))
		jobs[i] = batch.Job{
			Template:     def,
			TemplatePath: filepath.Join(cfg.TemplateDir, def.Image),
			Policy:       pol,
			DesignPath:   d,
			OutName:      fmt.Sprintf("%s_%s", def.Name, name),
		}
	}

	bcfg := batch.Config{
		OutputDir:    cfg.OutputDir,
		Templates:    assets.NewCache(),
		PreviewMaxPx: cfg.PreviewMaxPx,
		Workers:      cfg.Workers,
	}
	if *watermark {
		bcfg.WatermarkPath = cfg.Watermark
	}

	fmt.Printf("Rendering %d mockup(s) for template %q with %d workers\n", len(jobs), def.Name, cfg.Workers)
	results := batch.Run(bcfg, jobs)

	okCount := 0
	for _, r := range results {
		if r.Success {
			okCount++
		} else {
			fmt.Fprintf(os.Stderr, "  skip %s: %s\n", r.Name, r.Error)
		}
	}
	fmt.Printf("Done: %d/%d rendered\n", okCount, len(results))

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, jobs, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing manifest: %v\n", err)
		os.Exit(1)
	}
}

var designExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".tga": true,
}

func collectDesigns(single, dir string) ([]string, error) {
	if single != "" {
		return []string{single}, nil
	}
	if dir == "" {
		return nil, fmt.Errorf("either -design or -designs is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read designs dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if designExts[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no design images in %s", dir)
	}
	return paths, nil
}
