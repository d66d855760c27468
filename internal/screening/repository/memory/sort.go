package memory

import (
	"sort"
	"time"
)

// sortByTimeDesc orders records newest first. Seed rows share one creation
// instant, so the id is the tie-break to keep list output stable.
func sortByTimeDesc[T any](items []T, at func(T) time.Time, id func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := at(items[i]), at(items[j])
		if ti.Equal(tj) {
			return id(items[i]) > id(items[j])
		}
		return ti.After(tj)
	})
}
