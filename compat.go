package podlock

import (
	"fmt"

	"github.com/albertocavalcante/go-podlock/version"
)

// CompatibilityVersion is the CocoaPods release whose lock format this
// package targets. Generate records it in the COCOAPODS section unless
// WithCocoaPodsVersion overrides it.
//
// The Podfile.lock layout has been stable since CocoaPods 1.0: newer
// releases only added sections (SPEC REPOS in 1.0, PODFILE CHECKSUM in
// 1.0, CHECKOUT OPTIONS for external pods), all of which this package
// reads and writes.
const CompatibilityVersion = "1.15.2"

// CompatibleWith reports whether a tool at the given version can safely
// consume this document.
//
// The format is compatible across minor releases; a document is rejected
// only when it was written by a newer major version, whose sections may
// not be understood. This mirrors how CocoaPods itself validates a
// lockfile before installing.
func (l *Lockfile) CompatibleWith(toolVersion string) (bool, error) {
	recorded, err := version.New(l.cocoapodsVersion)
	if err != nil {
		return false, fmt.Errorf("recorded tool version: %w", err)
	}
	current, err := version.New(toolVersion)
	if err != nil {
		return false, fmt.Errorf("tool version: %w", err)
	}
	return recorded.Major() <= current.Major(), nil
}
