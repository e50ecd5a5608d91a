package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gangsheet-renderer/internal/assets"
	"gangsheet-renderer/internal/config"
	"gangsheet-renderer/internal/gangsheet"
	"gangsheet-renderer/internal/pngchunk"
)

// orderItem is one line of an order file: an artwork to repeat.
type orderItem struct {
	Image string `json:"image"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

func main() {
	configFile := flag.String("config", "config.json", "Path to config.json file")
	templateName := flag.String("template", "", "Template name whose policy sizes the sheets")
	orderFile := flag.String("order", "", "JSON order file: [{image, label, count}, ...]")
	outputDir := flag.String("output", "", "Output directory (overrides config)")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Resolve(config.Flags{OutputDir: *outputDir})

	if *templateName == "" {
		fmt.Fprintln(os.Stderr, "Error: -template is required")
		os.Exit(1)
	}
	pol, ok := cfg.Policy(*templateName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Warning: no policy for %q, using defaults\n", *templateName)
	}

	order, err := loadOrder(*orderFile, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	items := make([]gangsheet.Item, len(order))
	for i, o := range order {
		img, err := assets.Load(o.Image)
		if err != nil {
			// The count is still consumed downstream; the layout gets a hole.
			fmt.Fprintf(os.Stderr, "  skip image for %q: %v\n", o.Label, err)
		}
		items[i] = gangsheet.Item{Image: img, SizeLabel: o.Label, Count: o.Count}
	}

	report, err := gangsheet.Pack(items, gangsheet.ParamsFromPolicy(pol))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error packing: %v\n", err)
		os.Exit(1)
	}
	if report.EmptySheets > 0 {
		fmt.Fprintf(os.Stderr, "Warning: discarded %d empty sheet(s)\n", report.EmptySheets)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, sheet := range report.Sheets {
		path := filepath.Join(cfg.OutputDir, fmt.Sprintf("part%d.png", sheet.Part))
		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := pngchunk.Encode(f, sheet.Image, pol.OutputDPI); err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "Error encoding %s: %v\n", path, err)
			os.Exit(1)
		}
		f.Close()

		b := sheet.Image.Bounds()
		fmt.Printf("  %s: %d placement(s), %dx%dpx at %g dpi\n",
			filepath.Base(path), len(sheet.Placements), b.Dx(), b.Dy(), pol.OutputDPI)
	}
	fmt.Printf("Done: %d sheet(s)\n", len(report.Sheets))
}

// loadOrder reads the order from a JSON file, or from positional arguments of
// the form path:label:count.
func loadOrder(orderFile string, args []string) ([]orderItem, error) {
	if orderFile != "" {
		data, err := os.ReadFile(orderFile)
		if err != nil {
			return nil, fmt.Errorf("read order file: %w", err)
		}
		var order []orderItem
		if err := json.Unmarshal(data, &order); err != nil {
			return nil, fmt.Errorf("parse order file: %w", err)
		}
		return order, nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("either -order or path:label:count arguments required")
	}
	var order []orderItem
	for _, arg := range args {
		parts := strings.Split(arg, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("bad item %q, want path:label:count", arg)
		}
		count, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("bad count in %q: %w", arg, err)
		}
		order = append(order, orderItem{Image: parts[0], Label: parts[1], Count: count})
	}
	return order, nil
}
