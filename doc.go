// Package podlock reads, writes, and diffs CocoaPods Podfile.lock
// documents.
//
// A Podfile.lock records the outcome of one dependency-resolution run:
// which pods were installed at which versions, the declared dependencies
// that produced them, where externally sourced pods came from, and
// checksums that tie the document back to the podspecs and the manifest
// it was generated from.
//
// # Overview
//
// The package provides three main components:
//
//   - Parse / ReadFile: decode an existing document into a Lockfile
//   - Generate: build a Lockfile from resolved dependencies and specs
//   - DetectChanges: classify manifest edits against a locked state
//
// # Quick Start
//
// Reading an existing document:
//
//	lock, err := podlock.ReadFile("Podfile.lock")
//	if err != nil {
//	    return err
//	}
//	v, ok := lock.Version("Alamofire")
//
// Generating one from resolution output:
//
//	lock, err := podlock.Generate(deps, specs,
//	    podlock.WithPodfileChecksum(sum),
//	)
//	if err != nil {
//	    return err
//	}
//	err = lock.WriteFile("Podfile.lock")
//
// Diffing against edited requirements:
//
//	changes := lock.DetectChanges(freshDeps)
//	if changes.HasChanges() {
//	    fmt.Println(changes.Added, changes.Changed, changes.Removed)
//	}
//
// # Canonical Encoding
//
// Encode always produces the same bytes for the same logical content:
// sections in fixed order, entries sorted, one blank line between
// sections. Generate is deterministic, so generating twice from the
// same inputs yields byte-identical documents regardless of input
// order.
//
// # Thread Safety
//
// Lockfile is immutable after construction; all its methods are safe
// for concurrent use.
package podlock
