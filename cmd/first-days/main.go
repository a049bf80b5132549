package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/config"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/report"
)

func main() {
	var (
		input      = flag.String("input", "", "Scatterplot card JSON export (required)")
		output     = flag.String("output", "", "Output CSV path (default <input>_metrics.csv)")
		configPath = flag.String("config", "", "Optional YAML config overriding the built-in defaults")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	body, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	tbl, err := report.FirstDays(report.Document{Name: filepath.Base(*input), Body: body}, cfg)
	if err != nil {
		log.Fatalf("first-days report: %v", err)
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(*input, filepath.Ext(*input)) + "_metrics.csv"
	}
	if err := tbl.WriteCSVFile(out); err != nil {
		log.Fatalf("write output: %v", err)
	}
	log.Printf("Wrote %d rows to %s", tbl.Len(), out)
}
