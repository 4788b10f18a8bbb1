package podlock

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
)

// Generate builds a lock document from the declared dependency set and
// the resolver's output. Determinism is a hard requirement: equal inputs
// produce byte-identical encodings even when the input ordering is
// permuted, so every collection is sorted before it lands in the
// document and resolver ordering never leaks into the persisted form.
//
// The same logical unit may appear once per build target or platform;
// duplicate entries collapse and entries sharing a pod token merge by
// taking the union of their dependency tokens.
func Generate(deps []Dependency, specs []ResolvedSpec, opts ...GenerateOption) (*Lockfile, error) {
	cfg, err := newGenerateConfig(opts...)
	if err != nil {
		return nil, err
	}

	pods, names, err := generatePods(specs)
	if err != nil {
		return nil, err
	}
	checksums, err := generateChecksums(specs, names, cfg.digest)
	if err != nil {
		return nil, err
	}

	lf := &Lockfile{
		pods:             pods,
		dependencies:     generateDependencies(deps),
		specRepos:        generateSpecRepos(specs, names),
		externalSources:  generateExternalSources(deps),
		checksums:        checksums,
		podfileChecksum:  cfg.podfileChecksum,
		cocoapodsVersion: cfg.cocoapodsVersion,
	}
	lf.checkoutOptions = filterCheckoutOptions(cfg.checkoutOptions, lf.externalSources)

	cfg.log().Debug("generated lock document",
		"pods", len(lf.pods),
		"dependencies", len(lf.dependencies),
		"cocoapods", lf.cocoapodsVersion)
	return lf, nil
}

// generatePods merges the resolved units into the PODS entries, and
// returns the parsed pod name for every unit token alongside.
func generatePods(specs []ResolvedSpec) ([]LockedPod, map[string]string, error) {
	merged := make(map[string]map[string]struct{}, len(specs))
	names := make(map[string]string, len(specs))
	for _, spec := range specs {
		name, _, err := parsePodToken(spec.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("resolved unit: %w", err)
		}
		names[spec.Name] = name
		set, ok := merged[spec.Name]
		if !ok {
			set = make(map[string]struct{}, len(spec.Dependencies))
			merged[spec.Name] = set
		}
		for _, dep := range spec.Dependencies {
			set[dep] = struct{}{}
		}
	}

	pods := make([]LockedPod, 0, len(merged))
	for _, token := range slices.Sorted(maps.Keys(merged)) {
		name, v, _ := parsePodToken(token)
		pods = append(pods, LockedPod{
			Name:         name,
			Version:      v,
			Dependencies: slices.Sorted(maps.Keys(merged[token])),
		})
	}
	return pods, names, nil
}

// generateDependencies renders the declared dependencies in canonical
// form, sorted by their rendered token.
func generateDependencies(deps []Dependency) []Dependency {
	out := make([]Dependency, len(deps))
	for i, dep := range deps {
		out[i] = dep.clone()
	}
	slices.SortFunc(out, func(a, b Dependency) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}

// generateExternalSources collects provenance for the declared
// dependencies that carry one.
func generateExternalSources(deps []Dependency) map[string]ExternalSource {
	sources := make(map[string]ExternalSource)
	for _, dep := range deps {
		if len(dep.ExternalSource) > 0 {
			sources[dep.Name] = dep.ExternalSource.clone()
		}
	}
	if len(sources) == 0 {
		return nil
	}
	return sources
}

// filterCheckoutOptions keeps checkout state only for pods that are
// actually declared with an external source.
func filterCheckoutOptions(opts map[string]ExternalSource, sources map[string]ExternalSource) map[string]ExternalSource {
	if len(opts) == 0 {
		return nil
	}
	out := make(map[string]ExternalSource)
	for name, state := range opts {
		if _, ok := sources[name]; ok {
			out[name] = state.clone()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// generateChecksums digests the defining podspec of every unit whose
// file is known. Checksums are keyed by root pod name since subspecs
// share their root's podspec. Units may repeat across build targets;
// their digests must agree or the document would depend on input order.
func generateChecksums(specs []ResolvedSpec, names map[string]string, digest DigestFunc) (map[string]string, error) {
	checksums := make(map[string]string)
	for _, spec := range specs {
		if spec.SpecFile == "" {
			continue
		}
		content, err := os.ReadFile(spec.SpecFile)
		if err != nil {
			return nil, fmt.Errorf("digest podspec for %s: %w", names[spec.Name], err)
		}
		name := rootName(names[spec.Name])
		sum := digest(content)
		if prev, ok := checksums[name]; ok && prev != sum {
			return nil, fmt.Errorf("conflicting podspec digests for %s", name)
		}
		checksums[name] = sum
	}
	if len(checksums) == 0 {
		return nil, nil
	}
	return checksums, nil
}

// generateSpecRepos groups the root names of repo-provided units by
// their spec repo. Subspecs collapse into their root pod.
func generateSpecRepos(specs []ResolvedSpec, names map[string]string) map[string][]string {
	repos := make(map[string]map[string]struct{})
	for _, spec := range specs {
		if spec.SpecRepo == "" {
			continue
		}
		set, ok := repos[spec.SpecRepo]
		if !ok {
			set = make(map[string]struct{})
			repos[spec.SpecRepo] = set
		}
		set[rootName(names[spec.Name])] = struct{}{}
	}
	if len(repos) == 0 {
		return nil
	}
	out := make(map[string][]string, len(repos))
	for repo, set := range repos {
		out[repo] = slices.Sorted(maps.Keys(set))
	}
	return out
}

// rootName strips a subspec path: "AFNetworking/Core" -> "AFNetworking".
func rootName(name string) string {
	root, _, _ := strings.Cut(name, "/")
	return root
}
