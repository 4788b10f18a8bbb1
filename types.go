package podlock

import (
	"maps"
	"slices"

	"github.com/albertocavalcante/go-podlock/version"
)

// ExternalSource describes where a pod declared outside a spec repo comes
// from. Keys and values are kept verbatim; common keys are "git" with
// "commit", "branch" or "tag", and the standalone "podspec" and "path".
// Lock documents written by Ruby CocoaPods spell the keys with a leading
// colon (":git"), which this package preserves.
type ExternalSource map[string]string

// Equal compares two source descriptions structurally.
func (s ExternalSource) Equal(other ExternalSource) bool {
	return maps.Equal(s, other)
}

// clone returns an independent copy, with nil preserved.
func (s ExternalSource) clone() ExternalSource {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

// value looks up a key tolerating both the plain and the Ruby symbol
// spelling ("git" and ":git").
func (s ExternalSource) value(key string) (string, bool) {
	if v, ok := s[key]; ok {
		return v, true
	}
	v, ok := s[":"+key]
	return v, ok
}

// RequirementKind classifies how a dependency constrains its pod.
type RequirementKind int

const (
	// RequirementNone accepts any version.
	RequirementNone RequirementKind = iota

	// RequirementExact pins a single version ("= 2.6.3").
	RequirementExact

	// RequirementRange accepts a version range ("~> 1.0.1", "> 1.0, < 2.0").
	RequirementRange

	// RequirementHead tracks the HEAD of the pod's source repository.
	RequirementHead

	// RequirementExternal fetches the pod from an external source
	// (git, podspec URL or local path) instead of a spec repo.
	RequirementExternal
)

// String returns a short lowercase label for the kind.
func (k RequirementKind) String() string {
	switch k {
	case RequirementExact:
		return "exact"
	case RequirementRange:
		return "range"
	case RequirementHead:
		return "head"
	case RequirementExternal:
		return "external"
	default:
		return "none"
	}
}

// Dependency represents one declared dependency: a pod name plus how the
// declaration constrains it. It corresponds to one entry of the
// DEPENDENCIES section.
type Dependency struct {
	// Name is the pod name, possibly a subspec name like "AFNetworking/Core".
	Name string

	// Requirement is the declared version constraint. The zero Requirement
	// means the dependency accepts any version.
	Requirement version.Requirement

	// ExternalSource is set when the pod comes from outside a spec repo.
	// Externally sourced dependencies carry no version requirement.
	ExternalSource ExternalSource

	// Head marks a legacy HEAD dependency.
	Head bool
}

// Kind derives the requirement classification. An external source takes
// precedence over everything else, then the HEAD marker, then the shape
// of the version requirement.
func (d Dependency) Kind() RequirementKind {
	switch {
	case len(d.ExternalSource) > 0:
		return RequirementExternal
	case d.Head:
		return RequirementHead
	case d.Requirement.None():
		return RequirementNone
	case d.Requirement.Exact():
		return RequirementExact
	default:
		return RequirementRange
	}
}

// Matches reports whether the named pod at the given locked version
// satisfies this dependency. A dependency without requirement matches any
// version including the unknown one; every other requirement rejects the
// unknown version.
func (d Dependency) Matches(name string, v version.Version) bool {
	if d.Name != name {
		return false
	}
	return d.Requirement.Accepts(v)
}

// clone returns an independent copy of the dependency.
func (d Dependency) clone() Dependency {
	d.ExternalSource = d.ExternalSource.clone()
	return d
}

// LockedPod is one entry of the PODS section: a resolved pod at its locked
// version together with the dependency tokens it required at resolution
// time.
type LockedPod struct {
	// Name is the pod name, including any subspec path.
	Name string

	// Version is the locked version. The zero Version marks a pod locked
	// without a recorded version, which legacy CocoaPods wrote for pods in
	// an untracked local state.
	Version version.Version

	// Dependencies holds the pod's requirement tokens verbatim,
	// e.g. "AFNetworking/Core (= 2.6.3)" or "SDWebImage".
	Dependencies []string
}

// clone returns an independent copy of the pod entry.
func (p LockedPod) clone() LockedPod {
	p.Dependencies = slices.Clone(p.Dependencies)
	return p
}

// ResolvedSpec describes one resolved unit as reported by a dependency
// resolver. It is the generator's input.
type ResolvedSpec struct {
	// Name is the canonical pod token, usually "Name (Version)". A bare
	// name is accepted for pods resolved without a version.
	Name string

	// Dependencies lists the unit's requirement tokens, e.g. "Dep (= 1.0)".
	Dependencies []string

	// SpecFile is the path of the podspec defining the unit, when known.
	// Generate digests its content into SPEC CHECKSUMS.
	SpecFile string

	// SpecRepo identifies the spec repo providing the unit, when known.
	// It feeds the SPEC REPOS section and is empty for externally
	// sourced pods.
	SpecRepo string
}
