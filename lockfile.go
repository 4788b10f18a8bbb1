package podlock

import (
	"bytes"
	"maps"
	"slices"
	"sync"

	"github.com/albertocavalcante/go-podlock/version"
)

// Lockfile is an immutable CocoaPods lock document: the record of one
// dependency-resolution run. It holds the resolved pods, the declared
// dependencies they came from, provenance for externally sourced pods,
// podspec checksums, and the version of the tool that wrote it.
//
// A Lockfile is created by Parse/ReadFile or by Generate and never
// mutated afterwards, so it is safe for concurrent readers. The derived
// name and version indexes are built once on first use.
type Lockfile struct {
	pods             []LockedPod
	dependencies     []Dependency
	specRepos        map[string][]string
	externalSources  map[string]ExternalSource
	checkoutOptions  map[string]ExternalSource
	checksums        map[string]string
	podfileChecksum  string
	cocoapodsVersion string

	indexOnce sync.Once
	names     []string
	versions  map[string]version.Version
}

// buildIndexes derives the name list and name-to-version index from the
// pods section. Later entries win on duplicate names, which can only
// occur in hand-edited documents.
func (l *Lockfile) buildIndexes() {
	l.indexOnce.Do(func() {
		l.names = make([]string, 0, len(l.pods))
		l.versions = make(map[string]version.Version, len(l.pods))
		for _, p := range l.pods {
			l.names = append(l.names, p.Name)
			l.versions[p.Name] = p.Version
		}
	})
}

// Pods returns the resolved pod entries in document order.
func (l *Lockfile) Pods() []LockedPod {
	pods := make([]LockedPod, len(l.pods))
	for i, p := range l.pods {
		pods[i] = p.clone()
	}
	return pods
}

// PodNames returns the names of all resolved pods in document order,
// subspecs included.
func (l *Lockfile) PodNames() []string {
	l.buildIndexes()
	return slices.Clone(l.names)
}

// PodVersions returns the locked version of every resolved pod. Pods
// locked without a version map to the zero Version.
func (l *Lockfile) PodVersions() map[string]version.Version {
	l.buildIndexes()
	return maps.Clone(l.versions)
}

// Version returns the locked version of the named pod. The second result
// is false when the pod is not in the document at all; a pod locked
// without a version yields the zero Version and true.
func (l *Lockfile) Version(name string) (version.Version, bool) {
	l.buildIndexes()
	v, ok := l.versions[name]
	return v, ok
}

// Dependencies returns the declared dependencies captured at lock time,
// in document order.
func (l *Lockfile) Dependencies() []Dependency {
	deps := make([]Dependency, len(l.dependencies))
	for i, d := range l.dependencies {
		deps[i] = d.clone()
	}
	return deps
}

// ExternalSourceFor returns the external-source description recorded for
// the named pod, or nil if it has none.
func (l *Lockfile) ExternalSourceFor(name string) ExternalSource {
	return l.externalSources[name].clone()
}

// CheckoutOptionsFor returns the exact checkout state recorded for the
// named externally sourced pod, or nil if it has none.
func (l *Lockfile) CheckoutOptionsFor(name string) ExternalSource {
	return l.checkoutOptions[name].clone()
}

// SpecRepos returns the spec-repo provenance mapping: repo identifier to
// the sorted names of the pods it provided.
func (l *Lockfile) SpecRepos() map[string][]string {
	if l.specRepos == nil {
		return nil
	}
	repos := make(map[string][]string, len(l.specRepos))
	for repo, names := range l.specRepos {
		repos[repo] = slices.Clone(names)
	}
	return repos
}

// ChecksumFor returns the recorded podspec digest of the named pod.
func (l *Lockfile) ChecksumFor(name string) (string, bool) {
	sum, ok := l.checksums[name]
	return sum, ok
}

// Checksums returns all recorded podspec digests keyed by pod name.
func (l *Lockfile) Checksums() map[string]string {
	return maps.Clone(l.checksums)
}

// PodfileChecksum returns the digest of the manifest the document was
// generated from. The second result is false for documents written
// before this field existed.
func (l *Lockfile) PodfileChecksum() (string, bool) {
	return l.podfileChecksum, l.podfileChecksum != ""
}

// CocoaPodsVersion returns the version string of the tool that wrote the
// document.
func (l *Lockfile) CocoaPodsVersion() string {
	return l.cocoapodsVersion
}

// DependencyForInstalledPod synthesizes the dependency that pins the
// named pod to exactly its locked version, attaching any external-source
// description recorded for it. It fails with InconsistentLockfileError
// when the document has no version for the pod: such a document cannot
// authoritatively pin it, and guessing would defeat reproducibility.
func (l *Lockfile) DependencyForInstalledPod(name string) (Dependency, error) {
	v, ok := l.Version(name)
	if !ok || v.IsZero() {
		return Dependency{}, &InconsistentLockfileError{Pod: name, Reason: "no version recorded"}
	}
	return Dependency{
		Name:           name,
		Requirement:    version.Pin(v),
		ExternalSource: l.ExternalSourceFor(name),
		Head:           v.Head(),
	}, nil
}

// Equal reports whether two documents have identical canonical encodings.
func (l *Lockfile) Equal(other *Lockfile) bool {
	if l == nil || other == nil {
		return l == other
	}
	return bytes.Equal(l.Encode(), other.Encode())
}
