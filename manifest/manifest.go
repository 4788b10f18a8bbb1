// Package manifest loads declared pod dependencies from a YAML manifest,
// the Go-native counterpart of a Podfile.
//
// A manifest names the top-level pods a project wants, each with at most
// one of a version requirement, an external source, or the HEAD marker:
//
//	dependencies:
//	  - name: AFNetworking
//	    requirement: "~> 2.6"
//	  - name: Custom
//	    source:
//	      git: https://github.com/x/custom.git
//	      tag: 1.0.0
//	  - name: Tracker
//	    head: true
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	podlock "github.com/albertocavalcante/go-podlock"
	"github.com/albertocavalcante/go-podlock/version"
)

// DefaultFileName is the conventional manifest file name.
const DefaultFileName = "podfile.yaml"

// ErrInvalidManifest marks a manifest that decoded but fails validation.
var ErrInvalidManifest = errors.New("invalid manifest")

// File mirrors the manifest document structure.
type File struct {
	Dependencies []Entry `yaml:"dependencies"`
}

// Entry is one declared dependency. Requirement, Source and Head are
// mutually exclusive; all absent declares the pod without constraint.
type Entry struct {
	// Name is the pod name, possibly a subspec like "AFNetworking/Core".
	Name string `yaml:"name"`

	// Requirement is a version constraint, e.g. "~> 2.6" or "= 1.0".
	Requirement string `yaml:"requirement,omitempty"`

	// Source is an external provenance mapping (git/tag/branch/commit,
	// podspec, path). Keys are recorded in the lock document's symbol
	// spelling, so "git" becomes ":git".
	Source map[string]string `yaml:"source,omitempty"`

	// Head declares a legacy HEAD dependency.
	Head bool `yaml:"head,omitempty"`
}

// Parse decodes manifest bytes into declared dependencies. Decoding is
// strict: unknown fields fail rather than being dropped silently. An
// empty document declares no dependencies.
func Parse(data []byte) ([]podlock.Dependency, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return f.dependencies()
}

// Load reads and parses the manifest at path.
func Load(path string) ([]podlock.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	deps, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return deps, nil
}

// Checksum digests the manifest file content, for recording in the
// generated document via podlock.WithPodfileChecksum.
func Checksum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}
	return podlock.DigestContent(data), nil
}

// dependencies validates the entries and maps them to the domain type.
func (f File) dependencies() ([]podlock.Dependency, error) {
	deps := make([]podlock.Dependency, 0, len(f.Dependencies))
	seen := make(map[string]struct{}, len(f.Dependencies))

	for i, e := range f.Dependencies {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: dependency %d: name is required", ErrInvalidManifest, i+1)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate dependency %q", ErrInvalidManifest, e.Name)
		}
		seen[e.Name] = struct{}{}

		dep, err := e.dependency()
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

func (e Entry) dependency() (podlock.Dependency, error) {
	set := 0
	for _, present := range []bool{e.Requirement != "", len(e.Source) > 0, e.Head} {
		if present {
			set++
		}
	}
	if set > 1 {
		return podlock.Dependency{}, fmt.Errorf(
			"%w: dependency %q: requirement, source and head are mutually exclusive",
			ErrInvalidManifest, e.Name)
	}

	dep := podlock.Dependency{Name: e.Name, Head: e.Head}
	if e.Requirement != "" {
		req, err := version.NewRequirement(e.Requirement)
		if err != nil {
			return podlock.Dependency{}, fmt.Errorf("%w: dependency %q: %w", ErrInvalidManifest, e.Name, err)
		}
		dep.Requirement = req
	}
	if len(e.Source) > 0 {
		dep.ExternalSource = symbolKeys(e.Source)
	}
	return dep, nil
}

// symbolKeys rewrites plain source keys to the Ruby symbol spelling used
// in lock documents, so manifest-declared sources compare structurally
// equal to sources read back from a Podfile.lock.
func symbolKeys(src map[string]string) podlock.ExternalSource {
	out := make(podlock.ExternalSource, len(src))
	for k, v := range src {
		if !strings.HasPrefix(k, ":") {
			k = ":" + k
		}
		out[k] = v
	}
	return out
}
