// maskview renders a template's placement regions as colored overlays, for
// checking operator-drawn polygons against the product photo.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"gangsheet-renderer/internal/assets"
	"gangsheet-renderer/internal/config"
	"gangsheet-renderer/internal/mask"
	"gangsheet-renderer/internal/regions"
)

var tints = [][3]uint8{
	{255, 64, 64},
	{64, 160, 255},
	{64, 220, 96},
	{255, 200, 32},
}

func main() {
	configFile := flag.String("config", "config.json", "Path to config.json file")
	templateName := flag.String("template", "", "Template name from regions.json")
	outPath := flag.String("out", "maskview.png", "Output image path")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Resolve(config.Flags{})

	defs, err := regions.Load(cfg.RegionsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading regions: %v\n", err)
		os.Exit(1)
	}
	def, ok := regions.Find(defs, *templateName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: template %q not defined\n", *templateName)
		os.Exit(1)
	}

	base, err := assets.Load(filepath.Join(cfg.TemplateDir, def.Image))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading template image: %v\n", err)
		os.Exit(1)
	}
	b := base.Bounds()

	for i, poly := range def.Regions {
		m, err := mask.Rasterize(poly, b.Dx(), b.Dy())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rasterizing region %d: %v\n", i, err)
			os.Exit(1)
		}
		tint := tints[i%len(tints)]
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				if !m.At(x, y) {
					continue
				}
				// 50/50 blend so the photo stays visible under the overlay
				pi := base.PixOffset(x, y)
				base.Pix[pi] = uint8((int(base.Pix[pi]) + int(tint[0])) / 2)
				base.Pix[pi+1] = uint8((int(base.Pix[pi+1]) + int(tint[1])) / 2)
				base.Pix[pi+2] = uint8((int(base.Pix[pi+2]) + int(tint[2])) / 2)
				base.Pix[pi+3] = 255
			}
		}
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, base); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d region(s))\n", *outPath, len(def.Regions))
}
