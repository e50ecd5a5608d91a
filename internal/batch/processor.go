// Package batch renders mockups for many designs concurrently. The engine
// packages are pure; this layer owns the worker pool, the shared template
// cache, and all file I/O.
package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"

	"gangsheet-renderer/internal/assets"
	"gangsheet-renderer/internal/compose"
	"gangsheet-renderer/internal/config"
	"gangsheet-renderer/internal/pngchunk"
	"gangsheet-renderer/internal/regions"
)

// Job is one design rendered against one template.
type Job struct {
	Template     regions.TemplateDef
	TemplatePath string // resolved base image path
	Policy       config.TemplatePolicy
	DesignPath   string
	OutName      string // output base name, no extension
}

// Config holds shared resources for a batch run. Templates is the load-once
// cache; it is safe across workers and its lifetime belongs to the caller.
type Config struct {
	OutputDir     string
	Templates     assets.Resolver
	WatermarkPath string // empty disables watermarking
	PreviewMaxPx  int
	Workers       int
}

// Result holds the outcome of processing one job.
type Result struct {
	Name    string
	Success bool
	Error   string
}

// Run processes all jobs using a worker pool.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f mockups/sec\n", p, total, rate)
				}
			}
		}
	}()

	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job Job) Result {
	base := cfg.Templates.Resolve(job.TemplatePath)
	if base == nil {
		return Result{Name: job.OutName, Error: fmt.Sprintf("template image not found: %s", job.TemplatePath)}
	}

	design, err := assets.Load(job.DesignPath)
	if err != nil {
		// Corrupt or missing design: skip this job, never the batch.
		return Result{Name: job.OutName, Error: err.Error()}
	}

	var out *image.NRGBA
	if len(job.Template.Regions) > 0 {
		b := base.Bounds()
		regs, err := compose.PrepareRegions(job.Template.Regions, b.Dx(), b.Dy())
		if err != nil {
			return Result{Name: job.OutName, Error: err.Error()}
		}
		out, err = compose.RenderMockup(base, regs, design, job.Policy.OffsetFraction)
		if err != nil {
			return Result{Name: job.OutName, Error: err.Error()}
		}
		if cfg.WatermarkPath != "" {
			wm := cfg.Templates.Resolve(cfg.WatermarkPath)
			if wm != nil {
				if err := compose.ApplyWatermark(out, regs, wm, job.Policy.OffsetFraction, job.Policy.WatermarkOpacity); err != nil {
					return Result{Name: job.OutName, Error: err.Error()}
				}
			}
		}
	} else {
		out, err = compose.FitToTemplate(design, job.Policy)
		if err != nil {
			return Result{Name: job.OutName, Error: err.Error()}
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return Result{Name: job.OutName, Error: err.Error()}
	}

	// Full-resolution PNG with embedded physical DPI for print tooling
	pngPath := filepath.Join(cfg.OutputDir, job.OutName+".png")
	f, err := os.Create(pngPath)
	if err != nil {
		return Result{Name: job.OutName, Error: err.Error()}
	}
	if err := pngchunk.Encode(f, out, job.Policy.OutputDPI); err != nil {
		f.Close()
		return Result{Name: job.OutName, Error: fmt.Sprintf("PNG encode: %v", err)}
	}
	f.Close()

	// Downsized WebP preview for the storefront
	preview := out
	if cfg.PreviewMaxPx > 0 {
		preview = imaging.Fit(out, cfg.PreviewMaxPx, cfg.PreviewMaxPx, imaging.Lanczos)
	}
	webpPath := filepath.Join(cfg.OutputDir, job.OutName+".webp")
	pf, err := os.Create(webpPath)
	if err != nil {
		return Result{Name: job.OutName, Error: err.Error()}
	}
	defer pf.Close()
	if err := nativewebp.Encode(pf, preview, nil); err != nil {
		return Result{Name: job.OutName, Error: fmt.Sprintf("WebP encode: %v", err)}
	}

	return Result{Name: job.OutName, Success: true}
}
