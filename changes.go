package podlock

import "slices"

// Changes partitions the previously locked, user-declared pods against a
// freshly declared dependency set. Every pod considered appears in
// exactly one of the four lists, each sorted by name.
//
// This is the primary read path of an install workflow: it decides which
// pods need work before any resolution happens.
type Changes struct {
	// Added contains pods declared now but never locked before.
	Added []string `json:"added,omitempty"`

	// Changed contains pods whose declaration no longer matches the
	// locked state: the requirement rejects the locked version, or the
	// external source differs.
	Changed []string `json:"changed,omitempty"`

	// Removed contains pods locked from an earlier declaration that is
	// now gone.
	Removed []string `json:"removed,omitempty"`

	// Unchanged contains pods whose declaration still matches the
	// locked state.
	Unchanged []string `json:"unchanged,omitempty"`
}

// HasChanges returns true if anything was added, changed or removed.
func (c *Changes) HasChanges() bool {
	return len(c.Added) > 0 || len(c.Changed) > 0 || len(c.Removed) > 0
}

// Total returns the number of pods across all four lists.
func (c *Changes) Total() int {
	return len(c.Added) + len(c.Changed) + len(c.Removed) + len(c.Unchanged)
}

// DetectChanges classifies the freshly declared dependency set against
// this document.
//
// Only pods the user declared at lock time take part: a pod that is in
// the document purely as a transitive dependency is recomputed by the
// next resolution, never diffed, so a fresh declaration that collides
// with a transitive-only name still counts as added.
func (l *Lockfile) DetectChanges(fresh []Dependency) *Changes {
	changes := &Changes{}

	declared := make(map[string]struct{}, len(l.dependencies))
	for _, dep := range l.dependencies {
		declared[dep.Name] = struct{}{}
	}

	working := slices.Clone(fresh)
	seen := make(map[string]struct{})
	for _, name := range l.PodNames() {
		if _, ok := declared[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		idx := slices.IndexFunc(working, func(d Dependency) bool { return d.Name == name })
		if idx < 0 {
			changes.Removed = append(changes.Removed, name)
			continue
		}
		dep := working[idx]
		working = slices.Delete(working, idx, idx+1)

		locked, _ := l.Version(name)
		if !dep.Matches(name, locked) || !dep.ExternalSource.Equal(l.externalSources[name]) {
			changes.Changed = append(changes.Changed, name)
		} else {
			changes.Unchanged = append(changes.Unchanged, name)
		}
	}

	for _, dep := range working {
		changes.Added = append(changes.Added, dep.Name)
	}

	slices.Sort(changes.Added)
	changes.Added = slices.Compact(changes.Added)
	slices.Sort(changes.Changed)
	slices.Sort(changes.Removed)
	slices.Sort(changes.Unchanged)
	return changes
}
