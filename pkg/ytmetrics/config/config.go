package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/internalerr"
)

// Config carries the path templates and report settings for every report
// family. Zero fields fall back to Default values during Load.
type Config struct {
	Chart     ChartConfig     `yaml:"chart"`
	FirstDays FirstDaysConfig `yaml:"first_days"`
	ChartData ChartDataConfig `yaml:"chart_data"`
	Retention RetentionConfig `yaml:"retention"`
	Daily     DailyConfig     `yaml:"daily"`
}

// ChartConfig addresses the chart metrics export.
type ChartConfig struct {
	// QueryKey selects the results[] entry holding the chart result table.
	QueryKey string `yaml:"query_key"`
	// KnownOrder is the preferred metric column ordering for output.
	KnownOrder []string `yaml:"known_order"`
	// FallbackNames name the metric slots positionally when the document
	// carries no discoverable metric names.
	FallbackNames []string `yaml:"fallback_names"`
}

// MetricSlot is one expected metric column: where its value array lives
// (relative to the result table) and the fallback name used when name
// discovery fails.
type MetricSlot struct {
	Path string `yaml:"path"`
	Name string `yaml:"name"`
}

// FirstDaysConfig addresses the "first N days" scatterplot card export.
type FirstDaysConfig struct {
	BasePath string       `yaml:"base_path"`
	Slots    []MetricSlot `yaml:"slots"`
	Periods  []string     `yaml:"periods"`
}

// ChartDataConfig drives the zipped chart-data merge.
type ChartDataConfig struct {
	CSVName string   `yaml:"csv_name"`
	Keys    []string `yaml:"keys"`
}

// RetentionConfig drives the retention archive merge.
type RetentionConfig struct {
	// FilenamePattern extracts start date, end date, and video title from
	// an archive filename.
	FilenamePattern string   `yaml:"filename_pattern"`
	ColumnOrder     []string `yaml:"column_order"`
}

// DailyConfig drives the daily stats report.
type DailyConfig struct {
	// Metrics are the base columns that get running totals.
	Metrics []string `yaml:"metrics"`
}

// Default returns the compiled-in configuration matching the analytics
// export format as of the current schema version.
func Default() Config {
	return Config{
		Chart: ChartConfig{
			QueryKey: "2__TOP_ENTITIES_CHARTS_QUERY_KEY",
			KnownOrder: []string{
				"SHORTS_FEED_IMPRESSIONS", "SHORTS_FEED_IMPRESSIONS_VTR",
				"RATINGS_LIKES", "SUBSCRIBERS_NET_CHANGE", "VIEWS", "WATCH_TIME",
				"VIDEO_THUMBNAIL_IMPRESSIONS", "VIDEO_THUMBNAIL_IMPRESSIONS_VTR",
				"COMMENTS", "SHARINGS",
			},
			FallbackNames: []string{
				"VIEWS", "WATCH_TIME", "SUBSCRIBERS_NET_CHANGE", "RATINGS_LIKES",
				"COMMENTS", "SHARINGS", "VIDEO_THUMBNAIL_IMPRESSIONS",
				"VIDEO_THUMBNAIL_IMPRESSIONS_VTR", "SHORTS_FEED_IMPRESSIONS",
				"SHORTS_FEED_IMPRESSIONS_VTR",
			},
		},
		FirstDays: FirstDaysConfig{
			BasePath: "results[0].value.getCards.cards[0].scatterplotData.resultTable",
			Slots: []MetricSlot{
				{Path: "metricColumns[0].counts.values", Name: "VIEWS"},
				{Path: "metricColumns[1].counts.values", Name: "VIDEO_THUMBNAIL_IMPRESSIONS"},
				{Path: "metricColumns[2].percentages.values", Name: "VIDEO_THUMBNAIL_IMPRESSIONS_VTR"},
				{Path: "metricColumns[3].percentages.values", Name: "AVERAGE_WATCH_PERCENTAGE"},
				{Path: "metricColumns[4].milliseconds.values", Name: "AVERAGE_WATCH_TIME"},
				{Path: "metricColumns[5].milliseconds.values", Name: "WATCH_TIME"},
				{Path: "metricColumns[6].counts.values", Name: "RATINGS_LIKES"},
				{Path: "metricColumns[7].counts.values", Name: "RATINGS_DISLIKES"},
				{Path: "metricColumns[8].counts.values", Name: "NEW_VIEWERS"},
				{Path: "metricColumns[9].counts.values", Name: "RETURNING_NEW_VIEWERS"},
			},
			Periods: []string{"24h", "7d", "28d"},
		},
		ChartData: ChartDataConfig{
			CSVName: "Chart data.csv",
			Keys:    []string{"Date", "Content", "Video title", "Video publish time", "Duration"},
		},
		Retention: RetentionConfig{
			FilenamePattern: `Audience retention (\d{4}-\d{2}-\d{2})_(\d{4}-\d{2}-\d{2}) (.+?)\.zip`,
			ColumnOrder: []string{
				"Video position (%)", "Absolute audience retention (%)", "Compared to other videos (%)",
				"Started watching", "Stopped watching", "Number of times each moment was seen",
				"Not subscribed Retention", "Subscribed Retention", "New Viewer Retention",
				"Return Viewer Retention", "zipfilename", "People Remaining", "Stopped/Remaining %",
				"Start Date", "End Date", "Video Title",
			},
		},
		Daily: DailyConfig{
			Metrics: []string{
				"views", "subscribersGained", "subscribersLost",
				"estimatedMinutesWatched", "comments", "likes",
				"dislikes", "shares",
			},
		},
	}
}

// Load reads a YAML file over the defaults; sections absent from the file
// keep their Default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Chart.QueryKey == "" {
		return fmt.Errorf("chart.query_key: %w", internalerr.ErrInvalidConfig)
	}
	if c.FirstDays.BasePath == "" || len(c.FirstDays.Slots) == 0 {
		return fmt.Errorf("first_days: %w", internalerr.ErrInvalidConfig)
	}
	if c.ChartData.CSVName == "" || len(c.ChartData.Keys) == 0 {
		return fmt.Errorf("chart_data: %w", internalerr.ErrInvalidConfig)
	}
	if c.Retention.FilenamePattern == "" {
		return fmt.Errorf("retention.filename_pattern: %w", internalerr.ErrInvalidConfig)
	}
	return nil
}
