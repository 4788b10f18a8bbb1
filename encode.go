package podlock

import (
	"bytes"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Top-level section headers in their canonical order. Any section whose
// data is empty is omitted from the encoded document.
const (
	sectionPods            = "PODS"
	sectionDependencies    = "DEPENDENCIES"
	sectionSpecRepos       = "SPEC REPOS"
	sectionExternalSources = "EXTERNAL SOURCES"
	sectionCheckoutOptions = "CHECKOUT OPTIONS"
	sectionSpecChecksums   = "SPEC CHECKSUMS"
	sectionPodfileChecksum = "PODFILE CHECKSUM"
	sectionCocoaPods       = "COCOAPODS"
)

// Encode renders the document in its canonical text form: fixed section
// order, two-space list indentation, four-space nested lists, exactly one
// blank line between sections. Encoding the same document always yields
// the same bytes.
func (l *Lockfile) Encode() []byte {
	var e docEncoder
	e.pods(l.pods)
	e.dependencies(l.dependencies)
	e.nameListSection(sectionSpecRepos, l.specRepos)
	e.sourceSection(sectionExternalSources, l.externalSources)
	e.sourceSection(sectionCheckoutOptions, l.checkoutOptions)
	e.stringMapSection(sectionSpecChecksums, l.checksums)
	e.scalarSection(sectionPodfileChecksum, l.podfileChecksum)
	e.scalarSection(sectionCocoaPods, l.cocoapodsVersion)
	return e.buf.Bytes()
}

// docEncoder accumulates the canonical text section by section.
type docEncoder struct {
	buf      bytes.Buffer
	sections int
}

// header writes a section header, preceded by the blank separator line
// for every section after the first.
func (e *docEncoder) header(name string) {
	if e.sections > 0 {
		e.buf.WriteByte('\n')
	}
	e.sections++
	e.buf.WriteString(name)
	e.buf.WriteByte(':')
}

func (e *docEncoder) pods(pods []LockedPod) {
	if len(pods) == 0 {
		return
	}
	e.header(sectionPods)
	e.buf.WriteByte('\n')
	for _, pod := range pods {
		if len(pod.Dependencies) == 0 {
			e.buf.WriteString("  - ")
			e.buf.WriteString(yamlScalar(pod.Token()))
			e.buf.WriteByte('\n')
			continue
		}
		e.buf.WriteString("  - ")
		e.buf.WriteString(yamlKey(pod.Token()))
		e.buf.WriteString(":\n")
		for _, dep := range pod.Dependencies {
			e.buf.WriteString("    - ")
			e.buf.WriteString(yamlScalar(dep))
			e.buf.WriteByte('\n')
		}
	}
}

func (e *docEncoder) dependencies(deps []Dependency) {
	if len(deps) == 0 {
		return
	}
	e.header(sectionDependencies)
	e.buf.WriteByte('\n')
	for _, dep := range deps {
		e.buf.WriteString("  - ")
		e.buf.WriteString(yamlScalar(dep.String()))
		e.buf.WriteByte('\n')
	}
}

func (e *docEncoder) nameListSection(name string, data map[string][]string) {
	if len(data) == 0 {
		return
	}
	e.header(name)
	e.buf.WriteByte('\n')
	for _, key := range slices.Sorted(maps.Keys(data)) {
		e.buf.WriteString("  ")
		e.buf.WriteString(yamlKey(key))
		e.buf.WriteString(":\n")
		for _, item := range data[key] {
			e.buf.WriteString("    - ")
			e.buf.WriteString(yamlScalar(item))
			e.buf.WriteByte('\n')
		}
	}
}

func (e *docEncoder) sourceSection(name string, data map[string]ExternalSource) {
	if len(data) == 0 {
		return
	}
	e.header(name)
	e.buf.WriteByte('\n')
	for _, pod := range slices.Sorted(maps.Keys(data)) {
		e.buf.WriteString("  ")
		e.buf.WriteString(yamlKey(pod))
		e.buf.WriteString(":\n")
		src := data[pod]
		for _, key := range slices.Sorted(maps.Keys(src)) {
			e.buf.WriteString("    ")
			e.buf.WriteString(yamlKey(key))
			e.buf.WriteString(": ")
			e.buf.WriteString(yamlScalar(src[key]))
			e.buf.WriteByte('\n')
		}
	}
}

func (e *docEncoder) stringMapSection(name string, data map[string]string) {
	if len(data) == 0 {
		return
	}
	e.header(name)
	e.buf.WriteByte('\n')
	for _, key := range slices.Sorted(maps.Keys(data)) {
		e.buf.WriteString("  ")
		e.buf.WriteString(yamlKey(key))
		e.buf.WriteString(": ")
		e.buf.WriteString(yamlScalar(data[key]))
		e.buf.WriteByte('\n')
	}
}

func (e *docEncoder) scalarSection(name, value string) {
	if value == "" {
		return
	}
	e.header(name)
	e.buf.WriteByte(' ')
	e.buf.WriteString(yamlScalar(value))
	e.buf.WriteByte('\n')
}

// resolvedTagPattern matches text a YAML reader would resolve to
// something other than a string: booleans, null, integers, floats and
// timestamps. Such text must be quoted to stay a string, the all-digit
// podspec digest being the classic case.
var resolvedTagPattern = regexp.MustCompile(
	`^(?i:true|false|yes|no|on|off|null|~)$` +
		`|^[-+]?[0-9][0-9_]*$` +
		`|^0x[0-9a-fA-F]+$` +
		`|^0o?[0-7]+$` +
		`|^[-+]?(\.[0-9]+|[0-9][0-9_]*(\.[0-9_]*)?)([eE][-+]?[0-9]+)?$` +
		`|^[-+]?\.(?i:inf)$` +
		`|^\.(?i:nan)$` +
		`|^\d{4}-\d{2}-\d{2}`,
)

// needsQuoting reports whether the text cannot stand as a plain YAML
// scalar in block context.
func needsQuoting(s string) bool {
	if s == "" || s != strings.TrimSpace(s) {
		return true
	}
	if resolvedTagPattern.MatchString(s) {
		return true
	}
	switch s[0] {
	case '-', '?', ':':
		// Indicators only when followed by space.
		if len(s) == 1 || s[1] == ' ' {
			return true
		}
	default:
		if strings.ContainsRune(",[]{}#&*!|>'\"%@`", rune(s[0])) {
			return true
		}
	}
	return strings.Contains(s, ": ") ||
		strings.HasSuffix(s, ":") ||
		strings.Contains(s, " #")
}

// yamlScalar renders s as a YAML scalar, double-quoting only when a
// plain scalar would be misread.
func yamlScalar(s string) string {
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

// yamlKey renders s as a YAML mapping key. Keys are quoted more eagerly
// than values: any embedded colon forces quotes, which is how spec-repo
// URLs end up quoted while pod names stay plain. A Ruby symbol spelling
// (":git") passes through untouched.
func yamlKey(s string) string {
	if len(s) > 1 && s[0] == ':' && !strings.ContainsAny(s[1:], ": ") {
		return s
	}
	if needsQuoting(s) || strings.Contains(s, ":") {
		return strconv.Quote(s)
	}
	return s
}
