package podlock

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse decodes lock document text. Decoding is strict and all or
// nothing: invalid YAML, an unknown or duplicated section, a malformed
// entry token or a missing COCOAPODS version fail the whole load, since
// a partially loaded lock document cannot be trusted for reproduction.
//
// Scalar text is taken verbatim from the document, so values like
// all-digit checksums or quoted version strings survive unmodified.
func Parse(data []byte) (*Lockfile, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, &DecodeError{Err: errors.New("empty document")}
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &DecodeError{Err: fmt.Errorf("expected a mapping at the top level, got %s", nodeKind(doc))}
	}

	sections := make(map[string]*yaml.Node, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &DecodeError{Err: fmt.Errorf("line %d: section header must be a scalar", key.Line)}
		}
		switch key.Value {
		case sectionPods, sectionDependencies, sectionSpecRepos,
			sectionExternalSources, sectionCheckoutOptions,
			sectionSpecChecksums, sectionPodfileChecksum, sectionCocoaPods:
		default:
			return nil, &DecodeError{Err: fmt.Errorf("line %d: unknown section %q", key.Line, key.Value)}
		}
		if _, dup := sections[key.Value]; dup {
			return nil, &DecodeError{Err: fmt.Errorf("line %d: duplicate section %q", key.Line, key.Value)}
		}
		sections[key.Value] = value
	}

	var d docDecoder
	lf := &Lockfile{}

	lf.externalSources = d.sourceSection(sections[sectionExternalSources], sectionExternalSources)
	lf.checkoutOptions = d.sourceSection(sections[sectionCheckoutOptions], sectionCheckoutOptions)
	lf.pods = d.podsSection(sections[sectionPods], lf.externalSources)
	lf.dependencies = d.dependenciesSection(sections[sectionDependencies], lf.externalSources)
	lf.specRepos = d.nameListSection(sections[sectionSpecRepos], sectionSpecRepos)
	lf.checksums = d.stringMapSection(sections[sectionSpecChecksums], sectionSpecChecksums)
	lf.podfileChecksum = d.scalarSection(sections[sectionPodfileChecksum], sectionPodfileChecksum)
	lf.cocoapodsVersion = d.scalarSection(sections[sectionCocoaPods], sectionCocoaPods)
	if d.err != nil {
		return nil, d.err
	}

	if lf.cocoapodsVersion == "" {
		return nil, &DecodeError{Section: sectionCocoaPods, Err: errors.New("missing tool version")}
	}
	return lf, nil
}

// docDecoder walks section nodes and keeps the first error it hits.
type docDecoder struct {
	err error
}

func (d *docDecoder) fail(section string, err error) {
	if d.err == nil {
		d.err = &DecodeError{Section: section, Err: err}
	}
}

// isEmpty reports whether the section is absent or an empty placeholder
// (a bare header with no entries reads back as a null scalar).
func isEmpty(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func (d *docDecoder) podsSection(n *yaml.Node, sources map[string]ExternalSource) []LockedPod {
	if d.err != nil || isEmpty(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		d.fail(sectionPods, fmt.Errorf("line %d: expected a sequence, got %s", n.Line, nodeKind(n)))
		return nil
	}

	pods := make([]LockedPod, 0, len(n.Content))
	for _, item := range n.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			name, v, err := parsePodToken(item.Value)
			if err != nil {
				d.fail(sectionPods, err)
				return nil
			}
			pods = append(pods, LockedPod{Name: name, Version: v})

		case yaml.MappingNode:
			if len(item.Content) != 2 || item.Content[0].Kind != yaml.ScalarNode {
				d.fail(sectionPods, fmt.Errorf("line %d: pod entry must map one token to its dependencies", item.Line))
				return nil
			}
			name, v, err := parsePodToken(item.Content[0].Value)
			if err != nil {
				d.fail(sectionPods, err)
				return nil
			}
			deps := d.tokenList(item.Content[1], sectionPods, sources)
			if d.err != nil {
				return nil
			}
			pods = append(pods, LockedPod{Name: name, Version: v, Dependencies: deps})

		default:
			d.fail(sectionPods, fmt.Errorf("line %d: unexpected %s entry", item.Line, nodeKind(item)))
			return nil
		}
	}
	return pods
}

// tokenList reads a sequence of dependency tokens, validating each one.
func (d *docDecoder) tokenList(n *yaml.Node, section string, sources map[string]ExternalSource) []string {
	if isEmpty(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		d.fail(section, fmt.Errorf("line %d: expected a sequence, got %s", n.Line, nodeKind(n)))
		return nil
	}
	tokens := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			d.fail(section, fmt.Errorf("line %d: expected a scalar entry, got %s", item.Line, nodeKind(item)))
			return nil
		}
		if _, err := parseDependencyToken(item.Value, sources); err != nil {
			d.fail(section, err)
			return nil
		}
		tokens = append(tokens, item.Value)
	}
	return tokens
}

func (d *docDecoder) dependenciesSection(n *yaml.Node, sources map[string]ExternalSource) []Dependency {
	if d.err != nil || isEmpty(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		d.fail(sectionDependencies, fmt.Errorf("line %d: expected a sequence, got %s", n.Line, nodeKind(n)))
		return nil
	}
	deps := make([]Dependency, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			d.fail(sectionDependencies, fmt.Errorf("line %d: expected a scalar entry, got %s", item.Line, nodeKind(item)))
			return nil
		}
		dep, err := parseDependencyToken(item.Value, sources)
		if err != nil {
			d.fail(sectionDependencies, err)
			return nil
		}
		deps = append(deps, dep)
	}
	return deps
}

func (d *docDecoder) sourceSection(n *yaml.Node, section string) map[string]ExternalSource {
	if d.err != nil || isEmpty(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		d.fail(section, fmt.Errorf("line %d: expected a mapping, got %s", n.Line, nodeKind(n)))
		return nil
	}
	out := make(map[string]ExternalSource, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			d.fail(section, fmt.Errorf("line %d: pod name must be a scalar", key.Line))
			return nil
		}
		src := d.stringMap(value, section)
		if d.err != nil {
			return nil
		}
		out[key.Value] = src
	}
	return out
}

func (d *docDecoder) stringMapSection(n *yaml.Node, section string) map[string]string {
	if d.err != nil || isEmpty(n) {
		return nil
	}
	return d.stringMap(n, section)
}

// stringMap reads a flat scalar-to-scalar mapping.
func (d *docDecoder) stringMap(n *yaml.Node, section string) map[string]string {
	if isEmpty(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		d.fail(section, fmt.Errorf("line %d: expected a mapping, got %s", n.Line, nodeKind(n)))
		return nil
	}
	out := make(map[string]string, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			d.fail(section, fmt.Errorf("line %d: expected scalar key and value", key.Line))
			return nil
		}
		out[key.Value] = value.Value
	}
	return out
}

func (d *docDecoder) nameListSection(n *yaml.Node, section string) map[string][]string {
	if d.err != nil || isEmpty(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		d.fail(section, fmt.Errorf("line %d: expected a mapping, got %s", n.Line, nodeKind(n)))
		return nil
	}
	out := make(map[string][]string, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			d.fail(section, fmt.Errorf("line %d: key must be a scalar", key.Line))
			return nil
		}
		names := d.scalarList(value, section)
		if d.err != nil {
			return nil
		}
		out[key.Value] = names
	}
	return out
}

// scalarList reads a sequence of plain scalars.
func (d *docDecoder) scalarList(n *yaml.Node, section string) []string {
	if isEmpty(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		d.fail(section, fmt.Errorf("line %d: expected a sequence, got %s", n.Line, nodeKind(n)))
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode {
			d.fail(section, fmt.Errorf("line %d: expected a scalar entry, got %s", item.Line, nodeKind(item)))
			return nil
		}
		out = append(out, item.Value)
	}
	return out
}

func (d *docDecoder) scalarSection(n *yaml.Node, section string) string {
	if d.err != nil || isEmpty(n) {
		return ""
	}
	if n.Kind != yaml.ScalarNode {
		d.fail(section, fmt.Errorf("line %d: expected a scalar, got %s", n.Line, nodeKind(n)))
		return ""
	}
	return n.Value
}

// nodeKind names a node kind for error messages.
func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown node"
	}
}
