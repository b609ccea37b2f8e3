package enrich

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByName orders rows by a display name, ascending, using a
// case- and diacritic-insensitive collation. The sort is stable, but
// distinct entities can share a display name, so ties carry no identity
// guarantee.
func SortByName[T any](rows []T, name func(T) string) {
	// Collators are not safe for concurrent use; build one per call.
	c := collate.New(language.Und, collate.Loose)
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(name(rows[i]), name(rows[j])) < 0
	})
}

// SortByRateDesc orders rows by a computed rate, highest first. Rows whose
// rate is nil ("not computable") sort after every non-nil row regardless of
// direction.
func SortByRateDesc[T any](rows []T, rate func(T) *float64) {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rate(rows[i]), rate(rows[j])
		if ri == nil {
			return false
		}
		if rj == nil {
			return true
		}
		return *ri > *rj
	})
}
