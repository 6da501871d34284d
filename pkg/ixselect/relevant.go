package ixselect

import "github.com/eddiewu/docixselect/pkg/catalog"

// FindRelevantIndices returns the subset of allIndexes whose leading
// (first) key-pattern field appears in fields. An index can never be
// used at all, in any position, unless something in the query
// constrains its leading field - so this is the cheap filter applied
// before the more expensive per-leaf rating in RateIndices.
func FindRelevantIndices(fields map[string]struct{}, allIndexes []catalog.IndexEntry) []catalog.IndexEntry {
	var relevant []catalog.IndexEntry
	for _, idx := range allIndexes {
		if _, ok := fields[idx.LeadingField()]; ok {
			relevant = append(relevant, idx)
		}
	}
	return relevant
}
