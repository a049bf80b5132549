package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/config"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/report"
)

func main() {
	var (
		snapshot   = flag.String("snapshot", "", "SQLite stats snapshot file (required)")
		filterDate = flag.String("filter-date", "", "Keep videos published on or after this date, YYYY-MM-DD (required)")
		output     = flag.String("output", "", "Output CSV path (default daily_stats_<timestamp>.csv)")
		configPath = flag.String("config", "", "Optional YAML config overriding the built-in defaults")
	)
	flag.Parse()

	if *snapshot == "" {
		log.Fatal("--snapshot required")
	}
	if *filterDate == "" {
		log.Fatal("--filter-date required")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	ctx := context.Background()
	tbl, err := report.Daily(ctx, *snapshot, *filterDate, cfg.Daily)
	if err != nil {
		log.Fatalf("daily stats report: %v", err)
	}

	out := *output
	if out == "" {
		out = fmt.Sprintf("daily_stats_%s.csv", time.Now().Format("20060102_150405"))
	}
	if err := tbl.WriteCSVFile(out); err != nil {
		log.Fatalf("write output: %v", err)
	}
	log.Printf("Wrote %d rows to %s", tbl.Len(), out)
}
