package main

import (
	"flag"
	"log"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/config"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/report"
)

func main() {
	var (
		inputDir   = flag.String("input-dir", "", "Directory of export archives (required)")
		csvName    = flag.String("csv-name", "", "CSV filename inside each archive (default from config)")
		output     = flag.String("output", "merged_chart_data.csv", "Output CSV path")
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
	if *csvName != "" {
		cfg.ChartData.CSVName = *csvName
	}

	tbl, summary, err := report.ChartData(*inputDir, cfg.ChartData)
	for _, w := range summary.Warnings {
		log.Printf("skipped %s: %s", w.Input, w.Reason)
	}
	if err != nil {
		log.Fatalf("chart data merge: %v", err)
	}

	if err := tbl.WriteCSVFile(*output); err != nil {
		log.Fatalf("write output: %v", err)
	}
	log.Printf("%s", summary.String())
	log.Printf("Wrote %d rows to %s", tbl.Len(), *output)
}
