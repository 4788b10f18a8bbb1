package version

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		input     string
		wantErr   bool
		wantHead  bool
		wantMajor int
	}{
		{"1.0", false, false, 1},
		{"1", false, false, 1},
		{"2.6.3", false, false, 2},
		{"0.20.2", false, false, 0},
		{"1.2.3.4", false, false, 1},
		{"3.0.0-beta.1", false, false, 3},
		// RubyGems dotted pre-release tails
		{"0.39.0.beta.4", false, false, 0},
		{"1.10.0.rc.1", false, false, 1},
		// Legacy HEAD qualifier
		{"HEAD based on 1.0", false, true, 1},
		{"HEAD based on 1.2.0", false, true, 1},
		// Invalid formats
		{"", true, false, 0},
		{"abc", true, false, 0},
		{"HEAD", true, false, 0},
		{"1..0", true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := New(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("New(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("New(%q) unexpected error: %v", tt.input, err)
				return
			}
			if v.String() != tt.input {
				t.Errorf("New(%q).String() = %q, want the input back", tt.input, v.String())
			}
			if v.Head() != tt.wantHead {
				t.Errorf("New(%q).Head() = %v, want %v", tt.input, v.Head(), tt.wantHead)
			}
			if v.Major() != tt.wantMajor {
				t.Errorf("New(%q).Major() = %d, want %d", tt.input, v.Major(), tt.wantMajor)
			}
			if v.IsZero() {
				t.Errorf("New(%q).IsZero() = true, want false", tt.input)
			}
		})
	}
}

func TestVersionBase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.0", "1.0"},
		{"HEAD based on 1.0", "1.0"},
		{"HEAD based on 2.6.3", "2.6.3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Must(tt.input).Base(); got != tt.want {
				t.Errorf("Version(%q).Base() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.0.0", 0},
		{"1.0", "2.0", -1},
		{"2.0", "1.0", 1},
		{"1.0.1", "1.0.2", -1},
		{"1.0.9", "1.0.10", -1},
		// Pre-release versions sort before the release
		{"1.0.0-beta.1", "1.0.0", -1},
		{"1.0.0", "1.0.0-beta.1", 1},
		{"0.39.0.beta.4", "0.39.0", -1},
		// HEAD qualifier compares by the base version
		{"HEAD based on 1.0", "1.0", 0},
		{"HEAD based on 1.0", "1.1", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			got := Must(tt.a).Compare(Must(tt.b))
			if got != tt.want {
				t.Errorf("Version(%q).Compare(%q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestVersionCompareZero(t *testing.T) {
	var zero Version
	if got := zero.Compare(Must("1.0")); got != -1 {
		t.Errorf("zero.Compare(1.0) = %d, want -1", got)
	}
	if got := Must("1.0").Compare(zero); got != 1 {
		t.Errorf("Version(1.0).Compare(zero) = %d, want 1", got)
	}
	if got := zero.Compare(Version{}); got != 0 {
		t.Errorf("zero.Compare(zero) = %d, want 0", got)
	}
	if !zero.IsZero() {
		t.Error("zero.IsZero() = false, want true")
	}
	if zero.String() != "" {
		t.Errorf("zero.String() = %q, want empty", zero.String())
	}
}

func TestVersionsSort(t *testing.T) {
	input := []string{"2.0", "1.0", "1.0.0-beta.1", "1.5.0", "10.0"}
	want := []string{"1.0.0-beta.1", "1.0", "1.5.0", "2.0", "10.0"}

	versions := make(Versions, len(input))
	for i, s := range input {
		versions[i] = Must(s)
	}

	slices.SortFunc(versions, func(a, b Version) int {
		return a.Compare(b)
	})

	for i, v := range versions {
		if v.String() != want[i] {
			t.Errorf("sorted[%d] = %q, want %q", i, v.String(), want[i])
		}
	}
}

func TestMust(t *testing.T) {
	v := Must("1.0")
	if v.String() != "1.0" {
		t.Errorf("Must('1.0').String() = %q, want '1.0'", v.String())
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Must('invalid') should have panicked")
		}
	}()
	Must("invalid")
}
