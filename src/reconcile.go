package src

import "sort"

// ChangedPaths returns the paths present in both snapshots whose content
// differs, sorted. Identity is exact string comparison; whitespace-only
// edits count. Paths that exist on only one side are not changes.
func ChangedPaths(before, after map[string]string) []string {
	var changed []string
	for path, prev := range before {
		if next, ok := after[path]; ok && next != prev {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	return changed
}

// AddedPaths returns the paths present only in the after snapshot, sorted.
// Deletions are deliberately unreported: downstream consumers only act on
// surviving files.
func AddedPaths(before, after map[string]string) []string {
	var added []string
	for path := range after {
		if _, ok := before[path]; !ok {
			added = append(added, path)
		}
	}
	sort.Strings(added)
	return added
}
