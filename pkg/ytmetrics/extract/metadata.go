package extract

import (
	"time"

	"github.com/cgileta/ytmetrics/pkg/ytmetrics/jsondoc"
	"github.com/cgileta/ytmetrics/pkg/ytmetrics/table"
)

// VideoMetadata is one per-video descriptive record.
type VideoMetadata struct {
	ID        string
	Title     table.Value
	Published table.Value // "YYYY-MM-DD HH:MM:SS" local time, null when unparseable
	Length    table.Value // seconds, chart family only
}

// MetadataSet holds per-video metadata keyed by id. The first observation
// of an id wins; later duplicates are ignored.
type MetadataSet struct {
	order []string
	byID  map[string]VideoMetadata
}

// NewMetadataSet returns an empty set.
func NewMetadataSet() *MetadataSet {
	return &MetadataSet{byID: make(map[string]VideoMetadata)}
}

// Add records meta unless its id was already seen.
func (s *MetadataSet) Add(meta VideoMetadata) {
	if meta.ID == "" {
		return
	}
	if _, seen := s.byID[meta.ID]; seen {
		return
	}
	s.order = append(s.order, meta.ID)
	s.byID[meta.ID] = meta
}

// Merge folds other into s, keeping s's first-seen records.
func (s *MetadataSet) Merge(other *MetadataSet) {
	for _, id := range other.order {
		s.Add(other.byID[id])
	}
}

// Len returns the number of distinct videos.
func (s *MetadataSet) Len() int { return len(s.order) }

// IDs returns the video ids in first-seen order.
func (s *MetadataSet) IDs() []string { return s.order }

// Get looks up metadata by video id.
func (s *MetadataSet) Get(id string) (VideoMetadata, bool) {
	m, ok := s.byID[id]
	return m, ok
}

// ExtractChartMetadata collects the creator video list a chart export
// carries next to its metrics (results[] entry exposing
// value.getCreatorVideos.videos).
func ExtractChartMetadata(doc jsondoc.Value) *MetadataSet {
	set := NewMetadataSet()
	results, ok := jsondoc.Resolve(doc, jsondoc.MustPath("results"))
	if !ok {
		return set
	}
	for _, res := range results.Array() {
		videos, ok := jsondoc.Resolve(res, jsondoc.MustPath("value.getCreatorVideos.videos"))
		if !ok || videos.Kind() != jsondoc.Array {
			continue
		}
		for _, video := range videos.Array() {
			idVal, ok := video.Field("videoId")
			if !ok {
				continue
			}
			meta := VideoMetadata{ID: idVal.String()}
			if title, ok := video.Field("title"); ok && title.Kind() == jsondoc.String {
				meta.Title = title.String()
			}
			if ts, ok := video.Field("timePublishedSeconds"); ok {
				meta.Published = formatEpoch(ts)
			}
			if length, ok := video.Field("lengthSeconds"); ok {
				if f, ok := length.AsFloat(); ok {
					meta.Length = f
				}
			}
			set.Add(meta)
		}
		break
	}
	return set
}

// ExtractSideEntities collects per-video metadata from a card's
// sideEntities list (first-days family).
func ExtractSideEntities(doc jsondoc.Value, basePath jsondoc.Path) *MetadataSet {
	set := NewMetadataSet()
	entitiesPath, err := basePath.Append("sideEntities.videos")
	if err != nil {
		return set
	}
	entities, ok := jsondoc.Resolve(doc, entitiesPath)
	if !ok || entities.Kind() != jsondoc.Array {
		return set
	}
	for _, entity := range entities.Array() {
		data, ok := entity.Field("entityData")
		if !ok {
			continue
		}
		idVal, ok := data.Field("videoId")
		if !ok {
			continue
		}
		meta := VideoMetadata{ID: idVal.String()}
		if title, ok := data.Field("title"); ok && title.Kind() == jsondoc.String {
			meta.Title = title.String()
		}
		if ts, ok := data.Field("timePublishedSeconds"); ok {
			meta.Published = formatEpoch(ts)
		}
		set.Add(meta)
	}
	return set
}

// formatEpoch converts epoch seconds to a spreadsheet-friendly local
// timestamp. A non-numeric or absent value yields null, not an error.
func formatEpoch(ts jsondoc.Value) table.Value {
	f, ok := ts.AsFloat()
	if !ok {
		return nil
	}
	return time.Unix(int64(f), 0).Format("2006-01-02 15:04:05")
}

// MetadataColumns names the output columns a join appends. Length is
// optional; leave it empty to omit the column.
type MetadataColumns struct {
	Title     string
	Published string
	Length    string
}

// Join left-joins set onto t by the id column: every row keeps its cells
// and gains the metadata columns, null when the id has no metadata.
func Join(t *table.Table, set *MetadataSet, idCol string, cols MetadataColumns) {
	t.AddColumn(cols.Title)
	t.AddColumn(cols.Published)
	if cols.Length != "" {
		t.AddColumn(cols.Length)
	}
	for _, row := range t.Rows() {
		id, _ := row[idCol].(string)
		meta, ok := set.Get(id)
		if !ok {
			continue
		}
		row[cols.Title] = meta.Title
		row[cols.Published] = meta.Published
		if cols.Length != "" {
			row[cols.Length] = meta.Length
		}
	}
}
