package version

import (
	"fmt"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// constraintPattern splits one constraint into operator and version text.
// A missing operator means equality, matching the RubyGems default:
// "1.0" is read as "= 1.0".
var constraintPattern = regexp.MustCompile(`^(~>|>=|<=|!=|=|>|<)?\s*(\S+)$`)

// Requirement is a constraint list a pod version must satisfy.
//
// The zero Requirement is "no requirement": it accepts every version,
// including the unknown one. This is how a dependency declared without
// version constraints is represented.
type Requirement struct {
	raw string
	cs  goversion.Constraints
}

// NewRequirement parses a comma-separated constraint list such as
// "= 2.6.3", "~> 1.0.1" or "> 1.0, < 2.0". The result is canonicalized
// to one space between operator and version and ", " between constraints.
// An empty string yields the zero Requirement.
func NewRequirement(s string) (Requirement, error) {
	if strings.TrimSpace(s) == "" {
		return Requirement{}, nil
	}

	parts := strings.Split(s, ",")
	canonical := make([]string, 0, len(parts))
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		m := constraintPattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return Requirement{}, fmt.Errorf("invalid requirement %q: malformed constraint %q", s, strings.TrimSpace(part))
		}
		op, ver := m[1], m[2]
		if op == "" {
			op = "="
		}
		if _, err := goversion.NewVersion(normalizePrerelease(ver)); err != nil {
			return Requirement{}, fmt.Errorf("invalid requirement %q: %w", s, err)
		}
		canonical = append(canonical, op+" "+ver)
		normalized = append(normalized, op+" "+normalizePrerelease(ver))
	}

	cs, err := goversion.NewConstraint(strings.Join(normalized, ","))
	if err != nil {
		return Requirement{}, fmt.Errorf("invalid requirement %q: %w", s, err)
	}
	return Requirement{raw: strings.Join(canonical, ", "), cs: cs}, nil
}

// MustRequirement parses a requirement or panics. Use only for constants/tests.
func MustRequirement(s string) Requirement {
	r, err := NewRequirement(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Pin returns the requirement that accepts exactly the given version,
// e.g. Pin(Must("1.0")) is "= 1.0". Any HEAD qualifier is dropped first.
func Pin(v Version) Requirement {
	return MustRequirement("= " + v.Base())
}

// String returns the canonical requirement text, or "" for the
// zero Requirement.
func (r Requirement) String() string {
	return r.raw
}

// None reports whether this is the zero Requirement.
func (r Requirement) None() bool {
	return r.raw == ""
}

// Exact reports whether the requirement pins a single version with "=".
func (r Requirement) Exact() bool {
	return len(r.cs) == 1 && strings.HasPrefix(r.raw, "= ")
}

// Accepts reports whether the given version satisfies the requirement.
// The zero Requirement accepts everything; any other requirement rejects
// the unknown version.
func (r Requirement) Accepts(v Version) bool {
	if r.None() {
		return true
	}
	if v.IsZero() {
		return false
	}
	return r.cs.Check(v.v)
}

// Equal returns true if both requirements have the same canonical form.
func (r Requirement) Equal(other Requirement) bool {
	return r.raw == other.raw
}
