package version

import "testing"

func TestNewRequirement(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
		want    string
	}{
		{"= 1.0", false, "= 1.0"},
		{"= 2.6.3", false, "= 2.6.3"},
		{"~> 1.0.1", false, "~> 1.0.1"},
		{"> 1.0, < 2.0", false, "> 1.0, < 2.0"},
		{">= 1.0", false, ">= 1.0"},
		{"!= 1.0", false, "!= 1.0"},
		// Canonicalization
		{"=1.0", false, "= 1.0"},
		{"~>1.0.1", false, "~> 1.0.1"},
		{"1.0", false, "= 1.0"},
		{" >   1.0 ,  < 2.0 ", false, "> 1.0, < 2.0"},
		// Empty means no requirement
		{"", false, ""},
		{"   ", false, ""},
		// Invalid
		{"foo", true, ""},
		{"^ 1.0", true, ""},
		{"= ", true, ""},
		{"> 1.0, bogus", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := NewRequirement(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewRequirement(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("NewRequirement(%q) unexpected error: %v", tt.input, err)
				return
			}
			if r.String() != tt.want {
				t.Errorf("NewRequirement(%q).String() = %q, want %q", tt.input, r.String(), tt.want)
			}
		})
	}
}

func TestRequirementAccepts(t *testing.T) {
	tests := []struct {
		req     string
		version string
		want    bool
	}{
		{"= 1.0", "1.0", true},
		{"= 1.0", "1.0.0", true},
		{"= 1.0", "1.0.1", false},
		{"= 2.6.3", "2.6.3", true},
		// Pessimistic operator: >= 1.0.1, < 1.1.0
		{"~> 1.0.1", "1.0.1", true},
		{"~> 1.0.1", "1.0.9", true},
		{"~> 1.0.1", "1.1.0", false},
		{"~> 1.0.1", "1.0.0", false},
		{"~> 1.0.1", "2.0", false},
		// Pessimistic operator on two segments: >= 1.0, < 2.0
		{"~> 1.0", "1.9", true},
		{"~> 1.0", "2.0", false},
		// Conjunctions
		{"> 1.0, < 2.0", "1.5", true},
		{"> 1.0, < 2.0", "2.0", false},
		{"> 1.0, < 2.0", "1.0", false},
		{">= 1.0", "0.9", false},
		{"!= 1.0", "1.1", true},
		{"!= 1.0", "1.0", false},
		// HEAD versions are checked by their base version
		{"= 1.0", "HEAD based on 1.0", true},
		{"= 1.0", "HEAD based on 1.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.req+"_"+tt.version, func(t *testing.T) {
			got := MustRequirement(tt.req).Accepts(Must(tt.version))
			if got != tt.want {
				t.Errorf("Requirement(%q).Accepts(%q) = %v, want %v", tt.req, tt.version, got, tt.want)
			}
		})
	}
}

func TestRequirementAcceptsZeroVersion(t *testing.T) {
	var zero Version
	if !MustRequirement("").Accepts(zero) {
		t.Error("no requirement should accept the unknown version")
	}
	if MustRequirement("= 1.0").Accepts(zero) {
		t.Error("= 1.0 should reject the unknown version")
	}
	if MustRequirement(">= 0").Accepts(zero) {
		t.Error(">= 0 should reject the unknown version")
	}
}

func TestRequirementNone(t *testing.T) {
	if !MustRequirement("").None() {
		t.Error("empty requirement should be None")
	}
	if MustRequirement("= 1.0").None() {
		t.Error("= 1.0 should not be None")
	}

	var zero Requirement
	if !zero.None() {
		t.Error("zero Requirement should be None")
	}
	if !zero.Accepts(Must("9.9.9")) {
		t.Error("zero Requirement should accept everything")
	}
}

func TestRequirementExact(t *testing.T) {
	tests := []struct {
		req  string
		want bool
	}{
		{"= 1.0", true},
		{"= 2.6.3", true},
		{"~> 1.0", false},
		{">= 1.0", false},
		{"> 1.0, < 2.0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.req, func(t *testing.T) {
			if got := MustRequirement(tt.req).Exact(); got != tt.want {
				t.Errorf("Requirement(%q).Exact() = %v, want %v", tt.req, got, tt.want)
			}
		})
	}
}

func TestPin(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.0", "= 1.0"},
		{"2.6.3", "= 2.6.3"},
		{"HEAD based on 1.0", "= 1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got := Pin(Must(tt.version))
			if got.String() != tt.want {
				t.Errorf("Pin(%q) = %q, want %q", tt.version, got.String(), tt.want)
			}
			if !got.Exact() {
				t.Errorf("Pin(%q) should be exact", tt.version)
			}
		})
	}
}
