package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/config"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/report"
)

func main() {
	var (
		inputDir   = flag.String("input-dir", "", "Directory of retention archives (required)")
		outputDir  = flag.String("output-dir", "", "Directory for the combined CSV (default ~/Downloads)")
		outputFile = flag.String("output-file", "", "Output filename (default retention_analysis_<timestamp>.csv)")
		configPath = flag.String("config", "", "Optional YAML config overriding the built-in defaults")
	)
	flag.Parse()

	if *inputDir == "" {
		log.Fatal("--input-dir required")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	dir := *outputDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("resolve home directory: %v", err)
		}
		dir = filepath.Join(home, "Downloads")
	}

	tbl, summary, err := report.Retention(*inputDir, cfg.Retention)
	for _, w := range summary.Warnings {
		log.Printf("skipped %s: %s", w.Input, w.Reason)
	}
	if err != nil {
		log.Fatalf("retention report: %v", err)
	}

	name := *outputFile
	if name == "" {
		name = fmt.Sprintf("retention_analysis_%s.csv", time.Now().Format("20060102_150405"))
	}
	out := filepath.Join(dir, name)
	if err := tbl.WriteCSVFile(out); err != nil {
		log.Fatalf("write output: %v", err)
	}
	log.Printf("%s", summary.String())
	log.Printf("Wrote %d rows to %s", tbl.Len(), out)
}
