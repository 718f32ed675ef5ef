package index

import (
	"sort"
	"time"

	"github.com/goliatone/go-newsroom/internal/markdown"
	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// SortByDate returns a copy of records ordered newest first. Records whose
// date cannot be parsed follow every dated record and keep their relative
// order, as do records sharing a date.
func SortByDate(records []interfaces.ArticleRecord) []interfaces.ArticleRecord {
	type keyed struct {
		record interfaces.ArticleRecord
		when   time.Time
		dated  bool
	}

	items := make([]keyed, len(records))
	for i, record := range records {
		when, ok := markdown.ParseDate(record.Date)
		items[i] = keyed{record: record, when: when, dated: ok}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.dated != b.dated {
			return a.dated
		}
		if !a.dated {
			return false
		}
		return a.when.After(b.when)
	})

	out := make([]interfaces.ArticleRecord, len(items))
	for i, item := range items {
		out[i] = item.record
	}
	return out
}
