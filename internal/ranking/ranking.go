// Package ranking selects the largest files of a result.
package ranking

import (
	"sort"

	"github.com/phobologic/nloc/internal/model"
)

// SelectFiles returns a new Result with only the maxFiles records that have
// the most lines. Unsupported counts rank below every supported one; ties
// are broken by path. The summary is recomputed over the kept records.
// If maxFiles is <= 0 or >= len(files), res is returned unchanged.
func SelectFiles(res *model.Result, maxFiles int) *model.Result {
	if maxFiles <= 0 || maxFiles >= len(res.Files) {
		return res
	}

	records := Ranked(res)[:maxFiles]

	out := &model.Result{
		Target: res.Target,
		Files:  make(map[string]*model.Record, maxFiles),
	}
	for _, rec := range records {
		out.Files[rec.Path] = rec
		out.Summary.Fold(rec)
	}
	return out
}

// Ranked returns the records ordered by descending total line count.
func Ranked(res *model.Result) []*model.Record {
	records := res.Sorted()
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[j].Sloc, records[i].Sloc)
	})
	return records
}

// less orders counts ascending with unsupported first.
func less(a, b model.LineCount) bool {
	if a.Unsupported != b.Unsupported {
		return a.Unsupported
	}
	return a.Total < b.Total
}
