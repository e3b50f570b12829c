package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fieldpix/internal/colormap"
	"fieldpix/internal/dataset"
	"fieldpix/internal/postprocess"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Rows        int
	Cols        int
	Depth       int
	Supersample int
	Palette     colormap.Map
	WebPQuality int
	Workers     int
}

// Result holds the outcome of processing one dataset file.
type Result struct {
	Path    string
	Kind    string
	Image   string
	Success bool
	Error   string
}

// Run processes all dataset files using a worker pool.
func Run(cfg Config, paths []string) []Result {
	total := len(paths)
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
					fmt.Printf("  [%d/%d] %.1f datasets/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	pathChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range pathChan {
				results[idx] = Process(cfg, paths[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range paths {
		pathChan <- i
	}
	close(pathChan)

	wg.Wait()
	close(done)

	return results
}

// Process renders a single dataset file to a WebP image in OutputDir.
func Process(cfg Config, path string) Result {
	d, err := dataset.Load(path)
	if err != nil {
		return Result{Path: path, Error: err.Error()}
	}

	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	buf, err := d.Rasterize(cfg.Rows*ss, cfg.Cols*ss, cfg.Depth)
	if err != nil {
		return Result{Path: path, Kind: d.Kind, Error: err.Error()}
	}

	img := colormap.Render(buf, cfg.Palette, colormap.Options{})
	if ss > 1 {
		img = postprocess.Downsample(img, cfg.Cols, cfg.Rows)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".webp"
	outPath := filepath.Join(cfg.OutputDir, name)
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return Result{Path: path, Kind: d.Kind, Error: err.Error()}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return Result{Path: path, Kind: d.Kind, Error: err.Error()}
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return Result{Path: path, Kind: d.Kind, Error: fmt.Sprintf("WebP encode: %v", err)}
	}

	return Result{Path: path, Kind: d.Kind, Image: name, Success: true}
}
