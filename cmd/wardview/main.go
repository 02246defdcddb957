package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/wardview/wardview/config"
	"github.com/wardview/wardview/dataset"
	"github.com/wardview/wardview/render"
	"github.com/wardview/wardview/seed"
	"github.com/wardview/wardview/server"
	"github.com/wardview/wardview/views"
)

// ============================================================================
// WARDVIEW CLI — Healthcare analytics dashboard
// ============================================================================

const version = "0.3.0"

func main() {
	dataPath := flag.String("data", "", "Path to patient CSV (overrides config/env)")
	addr := flag.String("addr", "", "Listen address (overrides config/env)")
	configPath := flag.String("config", "", "Path to YAML dashboard config")
	discover := flag.Bool("discover", false, "Print the dataset schema and exit")
	export := flag.String("export", "", "Write view JSON + chart PNGs to this directory and exit")
	seedCount := flag.Int("seed", 0, "Generate N synthetic patient rows and exit")
	outFile := flag.String("out", "healthcare_dataset.csv", "Output file for --seed")
	format := flag.String("format", "pretty", "Output format for --discover: json, pretty")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Wardview — healthcare analytics dashboard

Usage:
  wardview --data healthcare_dataset.csv
  wardview --data healthcare_dataset.csv --addr :9090
  wardview --data healthcare_dataset.csv --discover --format pretty
  wardview --data healthcare_dataset.csv --export out/
  wardview --seed 5000 --out healthcare_dataset.csv

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  WARDVIEW_ADDR    Listen address (default :8080)
  WARDVIEW_DATA    Dataset path
  A .env file in the working directory is honored.
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("wardview %s\n", version)
		os.Exit(0)
	}

	// ── Generate mode ─────────────────────────────────────────────────────
	if *seedCount > 0 {
		cfg := seed.DefaultConfig()
		cfg.Patients = *seedCount
		n, err := seed.WriteFile(*outFile, cfg)
		if err != nil {
			fatalf("Generate failed: %v", err)
		}
		log.Printf("Wrote %d synthetic patient rows to %s", n, *outFile)
		return
	}

	// ── Configuration ─────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("Config failed: %v", err)
	}
	if *dataPath != "" {
		cfg.Data = *dataPath
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	// ── Load dataset ──────────────────────────────────────────────────────
	table, err := dataset.Load(cfg.Data)
	if err != nil {
		fatalf("Load failed: %v", err)
	}
	log.Printf("Loaded %d patient records from %s (%d read, %d malformed)",
		table.Stats.RowsKept, cfg.Data, table.Stats.RowsRead, table.Stats.Malformed)
	for reason, n := range table.Stats.Dropped {
		log.Printf("  dropped %d rows: %s", n, reason)
	}

	// ── Discover mode ─────────────────────────────────────────────────────
	if *discover {
		writeJSON(os.Stdout, dataset.Describe(table), *format)
		return
	}

	// ── Build views ───────────────────────────────────────────────────────
	allViews := views.BuildAll(table, cfg.Views)
	log.Printf("Built %d dashboard views", len(allViews))

	// ── Export mode ───────────────────────────────────────────────────────
	if *export != "" {
		if err := exportViews(*export, allViews); err != nil {
			fatalf("Export failed: %v", err)
		}
		return
	}

	// ── Serve ─────────────────────────────────────────────────────────────
	app := server.New(table, allViews)
	log.Printf("Dashboard listening on %s", cfg.Addr)
	if err := app.Start(cfg.Addr); err != nil {
		fatalf("Server failed: %v", err)
	}
}

// exportViews writes views.json plus a PNG per chart-shaped view.
func exportViews(dir string, allViews []views.View) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	payload, err := json.MarshalIndent(allViews, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "views.json"), payload, 0o644); err != nil {
		return err
	}

	rendered := 0
	for _, v := range allViews {
		if !render.Renderable(v) {
			continue
		}
		png, err := render.PNG(v, render.Options{})
		if err != nil {
			if errors.Is(err, render.ErrNotRenderable) {
				continue
			}
			return fmt.Errorf("render %s: %w", v.ID, err)
		}
		if err := os.WriteFile(filepath.Join(dir, v.ID+".png"), png, 0o644); err != nil {
			return err
		}
		rendered++
	}

	log.Printf("Exported %d views (%d PNGs) to %s", len(allViews), rendered, dir)
	return nil
}

func writeJSON(w *os.File, v interface{}, format string) {
	var out []byte
	var err error
	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
