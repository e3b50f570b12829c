package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"fieldpix/internal/batch"
	"fieldpix/internal/colormap"
	"fieldpix/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	input := flag.String("input", "", "Dataset file or directory of *.json datasets")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	palette := flag.String("palette", "", "Palette name (viridis, gray) or strip image path")
	quality := flag.Int("quality", 0, "WebP quality 1-100 (default: 90)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Render only first N datasets for testing")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		InputDir:  *input,
		OutputDir: *outputDir,
		Palette:   *palette,
		Quality:   *quality,
		Workers:   *workers,
	})

	if cfg.InputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no input. Use -input or config.json.")
		os.Exit(1)
	}

	paths, err := collectDatasets(cfg.InputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *testN > 0 && *testN < len(paths) {
		paths = paths[:*testN]
	}
	if len(paths) == 0 {
		fmt.Println("No datasets to render.")
		os.Exit(0)
	}

	pal, err := colormap.ByName(cfg.Palette)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading palette: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("fieldpix rasterizer → WebP\n")
	fmt.Printf("Datasets: %d, Buffer: %dx%d, Workers: %d\n", len(paths), cfg.Cols, cfg.Rows, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Rows:        cfg.Rows,
		Cols:        cfg.Cols,
		Depth:       cfg.Depth,
		Supersample: cfg.Supersample,
		Palette:     pal,
		WebPQuality: cfg.WebPQuality,
		Workers:     cfg.Workers,
	}

	results := batch.Run(batchCfg, paths)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(paths))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Path, e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// collectDatasets accepts a single dataset file or a directory of *.json
// dataset files.
func collectDatasets(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{input}, nil
	}
	paths, err := filepath.Glob(filepath.Join(input, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
