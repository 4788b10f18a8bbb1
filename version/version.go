// Package version implements the version and requirement model used by
// CocoaPods lock documents.
//
// Pod versions follow the RubyGems convention: dot-separated numeric
// segments with an optional pre-release tail ("1.0", "2.6.3",
// "3.0.0-beta.1", "0.39.0.beta.4"). A version may additionally carry the
// legacy HEAD qualifier written by old CocoaPods releases
// ("HEAD based on 1.0").
//
// Requirements are comma-separated constraint lists over the operators
// =, !=, >, <, >=, <= and the pessimistic operator ~>
// ("= 2.6.3", "~> 1.0.1", "> 1.0, < 2.0").
//
// Parsing, comparison and constraint checking are backed by
// github.com/hashicorp/go-version, whose constraint grammar matches the
// CocoaPods one.
package version

import (
	"fmt"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// headPrefix is the qualifier legacy CocoaPods releases recorded for pods
// installed from the HEAD of their source repository, e.g. "HEAD based on 1.0".
const headPrefix = "HEAD based on "

// rubyPrereleasePattern matches RubyGems-style versions whose pre-release
// tail is attached with a dot instead of a dash, e.g. "0.39.0.beta.4".
var rubyPrereleasePattern = regexp.MustCompile(`^(v?\d+(?:\.\d+)*)\.([A-Za-z].*)$`)

// Version represents a resolved pod version.
//
// The original spelling is preserved verbatim, so a version survives a
// decode/encode round trip byte for byte.
//
// The zero Version is the distinct "unknown version" state used for pods
// locked without a recorded version. It is not the same as "0" and does
// not compare against real versions.
type Version struct {
	raw  string
	head bool
	v    *goversion.Version
}

// New creates a validated Version from a string.
func New(s string) (Version, error) {
	base := s
	head := false
	if rest, ok := strings.CutPrefix(s, headPrefix); ok {
		head = true
		base = rest
	}
	v, err := goversion.NewVersion(normalizePrerelease(base))
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return Version{raw: s, head: head, v: v}, nil
}

// Must creates a Version or panics. Use only for constants/tests.
func Must(s string) Version {
	v, err := New(s)
	if err != nil {
		panic(err)
	}
	return v
}

// normalizePrerelease rewrites RubyGems dotted pre-release tails into the
// dashed form the parser understands: "0.39.0.beta.4" -> "0.39.0-beta.4".
// The raw spelling is kept separately, so this never leaks into output.
func normalizePrerelease(s string) string {
	if m := rubyPrereleasePattern.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2]
	}
	return s
}

// String returns the version exactly as written, including any
// HEAD qualifier. The zero Version renders as the empty string.
func (v Version) String() string {
	return v.raw
}

// IsZero reports whether this is the unknown-version state.
func (v Version) IsZero() bool {
	return v.v == nil
}

// Head reports whether the version carries the legacy HEAD qualifier.
func (v Version) Head() bool {
	return v.head
}

// Base returns the version without the HEAD qualifier
// ("HEAD based on 1.0" -> "1.0").
func (v Version) Base() string {
	return strings.TrimPrefix(v.raw, headPrefix)
}

// Major returns the first numeric segment, or 0 for the zero Version.
func (v Version) Major() int {
	if v.v == nil {
		return 0
	}
	return v.v.Segments()[0]
}

// Compare compares two versions, ignoring any HEAD qualifier.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
// The zero Version sorts before every real version.
func (v Version) Compare(other Version) int {
	if v.v == nil || other.v == nil {
		switch {
		case v.v == other.v:
			return 0
		case v.v == nil:
			return -1
		default:
			return 1
		}
	}
	return v.v.Compare(other.v)
}

// Less returns true if v < other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Equal returns true if both versions are spelled identically.
func (v Version) Equal(other Version) bool {
	return v.raw == other.raw
}

// Versions is a sortable slice of Version.
type Versions []Version

func (v Versions) Len() int           { return len(v) }
func (v Versions) Swap(i, j int)      { v[i], v[j] = v[j], v[i] }
func (v Versions) Less(i, j int) bool { return v[i].Less(v[j]) }
