// Package e2e exercises the full lock lifecycle through the public API:
// manifest loading, generation, persistence, parsing and change
// classification working together on realistic project data.
package e2e

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	podlock "github.com/albertocavalcante/go-podlock"
	"github.com/albertocavalcante/go-podlock/manifest"
)

const projectManifest = `dependencies:
  - name: Alamofire
    requirement: "~> 5.4"
  - name: Charts
  - name: Kingfisher
    source:
      git: https://github.com/onevcat/Kingfisher.git
      tag: 6.3.1
  - name: SwiftObserver
    head: true
`

func writeManifest(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, manifest.DefaultFileName)
	if err := os.WriteFile(path, []byte(projectManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writePodspec(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name+".podspec")
	content := fmt.Sprintf("Pod::Spec.new do |s|\n  s.name = %q\nend\n", name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestE2E_LockLifecycle(t *testing.T) {
	project := t.TempDir()
	manifestPath := writeManifest(t, project)

	deps, err := manifest.Load(manifestPath)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	podfileSum, err := manifest.Checksum(manifestPath)
	if err != nil {
		t.Fatalf("manifest checksum: %v", err)
	}

	alamofireSpec := writePodspec(t, project, "Alamofire")
	chartsSpec := writePodspec(t, project, "Charts")
	specs := []podlock.ResolvedSpec{
		{Name: "Alamofire (5.4.4)", SpecFile: alamofireSpec, SpecRepo: "trunk"},
		{
			Name:         "Charts (3.6.0)",
			Dependencies: []string{"Charts/Core (= 3.6.0)"},
			SpecFile:     chartsSpec,
			SpecRepo:     "trunk",
		},
		{Name: "Charts/Core (3.6.0)", SpecFile: chartsSpec, SpecRepo: "trunk"},
		{Name: "Kingfisher (6.3.1)"},
		{Name: "SwiftObserver (HEAD based on 9.1)"},
	}

	lf, err := podlock.Generate(deps, specs,
		podlock.WithPodfileChecksum(podfileSum),
		podlock.WithCheckoutOptions(map[string]podlock.ExternalSource{
			"Kingfisher": {
				":git": "https://github.com/onevcat/Kingfisher.git",
				":tag": "6.3.1",
			},
		}),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	lockPath := podlock.DefaultPath(project)
	if err := lf.WriteFile(lockPath); err != nil {
		t.Fatalf("write lock document: %v", err)
	}
	if !podlock.Exists(lockPath) {
		t.Fatal("lock document not reported as existing")
	}

	reread, err := podlock.ReadFile(lockPath)
	if err != nil {
		t.Fatalf("read lock document: %v", err)
	}
	if !reread.Equal(lf) {
		t.Error("reread document differs from the generated one")
	}
	if !bytes.Equal(reread.Encode(), lf.Encode()) {
		t.Error("reread document encodes differently")
	}

	if v, ok := reread.Version("Charts"); !ok || v.String() != "3.6.0" {
		t.Errorf("Version(Charts) = %v, %v", v, ok)
	}
	wantSum := podlock.DigestContent([]byte(
		"Pod::Spec.new do |s|\n  s.name = \"Alamofire\"\nend\n"))
	if sum, ok := reread.ChecksumFor("Alamofire"); !ok || sum != wantSum {
		t.Errorf("ChecksumFor(Alamofire) = %q, %v, want %q", sum, ok, wantSum)
	}
	if sum, ok := reread.PodfileChecksum(); !ok || sum != podfileSum {
		t.Errorf("PodfileChecksum() = %q, %v, want %q", sum, ok, podfileSum)
	}

	fresh, err := manifest.Load(manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	changes := reread.DetectChanges(fresh)
	if changes.HasChanges() {
		t.Errorf("unedited manifest reported changes: %+v", changes)
	}
	if changes.Total() != 4 || len(changes.Unchanged) != 4 {
		t.Errorf("Total = %d, Unchanged = %v", changes.Total(), changes.Unchanged)
	}

	ok, err := reread.CompatibleWith(podlock.CompatibilityVersion)
	if err != nil {
		t.Fatalf("CompatibleWith: %v", err)
	}
	if !ok {
		t.Error("document incompatible with the version that wrote it")
	}
}

func TestE2E_EditCycle(t *testing.T) {
	locked := `dependencies:
  - name: Alamofire
    requirement: "~> 5.4"
  - name: Charts
    requirement: "= 3.6.0"
  - name: KeychainAccess
`
	deps, err := manifest.Parse([]byte(locked))
	if err != nil {
		t.Fatal(err)
	}
	lf, err := podlock.Generate(deps, []podlock.ResolvedSpec{
		{Name: "Alamofire (5.4.4)"},
		{Name: "Charts (3.6.0)"},
		{Name: "KeychainAccess (4.2.2)"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Bump Charts, drop KeychainAccess, add Moya.
	edited := `dependencies:
  - name: Alamofire
    requirement: "~> 5.4"
  - name: Charts
    requirement: "= 3.7.0"
  - name: Moya
    requirement: "~> 14.0"
`
	fresh, err := manifest.Parse([]byte(edited))
	if err != nil {
		t.Fatal(err)
	}

	changes := lf.DetectChanges(fresh)
	if !reflect.DeepEqual(changes.Added, []string{"Moya"}) {
		t.Errorf("Added = %v, want [Moya]", changes.Added)
	}
	if !reflect.DeepEqual(changes.Changed, []string{"Charts"}) {
		t.Errorf("Changed = %v, want [Charts]", changes.Changed)
	}
	if !reflect.DeepEqual(changes.Removed, []string{"KeychainAccess"}) {
		t.Errorf("Removed = %v, want [KeychainAccess]", changes.Removed)
	}
	if !reflect.DeepEqual(changes.Unchanged, []string{"Alamofire"}) {
		t.Errorf("Unchanged = %v, want [Alamofire]", changes.Unchanged)
	}

	// Re-resolving against the edited declarations settles the drift.
	relocked, err := podlock.Generate(fresh, []podlock.ResolvedSpec{
		{Name: "Alamofire (5.4.4)"},
		{Name: "Charts (3.7.0)"},
		{Name: "Moya (14.0.0)"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if changes := relocked.DetectChanges(fresh); changes.HasChanges() {
		t.Errorf("freshly locked manifest reported changes: %+v", changes)
	}
}

func TestE2E_RealWorldDocument(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "Podfile.lock"))
	if err != nil {
		t.Fatal(err)
	}

	lf, err := podlock.Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bytes.Equal(lf.Encode(), data) {
		t.Error("document did not round-trip byte for byte")
	}

	if got := len(lf.Pods()); got != 11 {
		t.Errorf("len(Pods()) = %d, want 11", got)
	}
	if got := len(lf.Dependencies()); got != 7 {
		t.Errorf("len(Dependencies()) = %d, want 7", got)
	}
	if v, ok := lf.Version("Moya/Core"); !ok || v.String() != "14.0.0" {
		t.Errorf("Version(Moya/Core) = %v, %v", v, ok)
	}
	if repos := lf.SpecRepos(); len(repos["trunk"]) != 6 {
		t.Errorf("SpecRepos()[trunk] = %v", repos["trunk"])
	}
	if opts := lf.CheckoutOptionsFor("Kingfisher"); opts[":tag"] != "6.3.1" {
		t.Errorf("CheckoutOptionsFor(Kingfisher) = %v", opts)
	}

	dep, err := lf.DependencyForInstalledPod("Kingfisher")
	if err != nil {
		t.Fatalf("DependencyForInstalledPod: %v", err)
	}
	if dep.Kind() != podlock.RequirementExternal {
		t.Errorf("Kind() = %v, want RequirementExternal", dep.Kind())
	}

	ok, err := lf.CompatibleWith("1.15.2")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("CompatibleWith(1.15.2) = false")
	}
}
