package podlock

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-podlock/version"
)

// tokenPattern splits a lock entry token into a name and an optional
// parenthesized tail: "AFNetworking (2.6.3)", "libPusher (~> 1.0)",
// "SDWebImage". The name may contain single internal spaces but never
// parentheses.
var tokenPattern = regexp.MustCompile(`^((?: ?[^ (])+)(?: \((.+)\))?$`)

// fromMarkerPattern detects the external-source form of a dependency
// token, e.g. "from `https://github.com/rs/SDWebImage.git`". Old
// documents closed the quote with an apostrophe, so both are accepted.
var fromMarkerPattern = regexp.MustCompile("from `.*[`']")

// legacyPodfileMarker is the pre-1.0 spelling for a dependency defined
// inline in the Podfile. It carries no reusable information and parses to
// a bare dependency.
const legacyPodfileMarker = "defined in Podfile"

// headMarkerPrefix begins the qualified HEAD form some documents carry in
// dependency tokens, e.g. "HEAD based on 1.0".
const headMarkerPrefix = "HEAD "

// parsePodToken parses one PODS entry token into its name and version.
// A token without a parenthesized version yields the zero Version.
func parsePodToken(token string) (string, version.Version, error) {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return "", version.Version{}, &MalformedPodTokenError{Token: token}
	}
	name, tail := m[1], m[2]
	if tail == "" {
		return name, version.Version{}, nil
	}
	v, err := version.New(tail)
	if err != nil {
		return "", version.Version{}, &MalformedPodTokenError{Token: token, Err: err}
	}
	return name, v, nil
}

// renderPodToken is the inverse of parsePodToken.
func renderPodToken(name string, v version.Version) string {
	if v.IsZero() {
		return name
	}
	return name + " (" + v.String() + ")"
}

// Token renders the pod's canonical PODS entry token, e.g.
// "AFNetworking (2.6.3)".
func (p LockedPod) Token() string {
	return renderPodToken(p.Name, p.Version)
}

// parseDependencyToken parses one DEPENDENCIES entry token. The tail is
// inspected in a fixed order: the legacy Podfile marker and the
// external-source marker first, then the HEAD marker, then a version
// requirement. External-source tokens only name their source; the payload
// is looked up in the document's EXTERNAL SOURCES data, so a missing
// entry there is an error.
func parseDependencyToken(token string, sources map[string]ExternalSource) (Dependency, error) {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return Dependency{}, &MalformedDependencyTokenError{Token: token}
	}
	name, tail := m[1], m[2]

	switch {
	case tail == "" || strings.Contains(tail, legacyPodfileMarker):
		return Dependency{Name: name}, nil

	case fromMarkerPattern.MatchString(tail):
		src, ok := sources[name]
		if !ok {
			return Dependency{}, &MalformedDependencyTokenError{
				Token: token,
				Err:   fmt.Errorf("%w for %q", ErrMissingExternalSource, name),
			}
		}
		return Dependency{Name: name, ExternalSource: src.clone()}, nil

	case tail == "HEAD" || strings.HasPrefix(tail, headMarkerPrefix):
		return Dependency{Name: name, Head: true}, nil

	default:
		req, err := version.NewRequirement(tail)
		if err != nil {
			return Dependency{}, &MalformedDependencyTokenError{Token: token, Err: err}
		}
		return Dependency{Name: name, Requirement: req}, nil
	}
}

// String renders the dependency in its DEPENDENCIES token form.
func (d Dependency) String() string {
	switch {
	case len(d.ExternalSource) > 0:
		return d.Name + " (" + externalSourceDescription(d.ExternalSource) + ")"
	case d.Head:
		return d.Name + " (HEAD)"
	case d.Requirement.None():
		return d.Name
	default:
		return d.Name + " (" + d.Requirement.String() + ")"
	}
}

// externalSourceDescription renders a source description the way
// DEPENDENCIES tokens carry it: the primary location in backquotes,
// followed by the git refinements that are present. The text is display
// only; parsing recovers the payload from EXTERNAL SOURCES instead.
func externalSourceDescription(src ExternalSource) string {
	if git, ok := src.value("git"); ok {
		var sb strings.Builder
		sb.WriteString("from `")
		sb.WriteString(git)
		sb.WriteByte('`')
		for _, key := range []string{"commit", "branch", "tag"} {
			if v, ok := src.value(key); ok {
				sb.WriteString(", ")
				sb.WriteString(key)
				sb.WriteString(" `")
				sb.WriteString(v)
				sb.WriteByte('`')
			}
		}
		return sb.String()
	}
	if podspec, ok := src.value("podspec"); ok {
		return "from `" + podspec + "`"
	}
	if path, ok := src.value("path"); ok {
		return "from `" + path + "`"
	}

	keys := slices.Sorted(maps.Keys(src))
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + ": " + src[k]
	}
	return "from `" + strings.Join(pairs, ", ") + "`"
}
