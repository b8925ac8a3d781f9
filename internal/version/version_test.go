package version

import (
	"strings"
	"testing"
)

func TestBuildIDFor(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2025-12-04", expected: 0},
		{name: "next day after epoch", date: "2025-12-05", expected: 1},
		{name: "one year later", date: "2026-12-04", expected: 365},
		{name: "date with leap years included", date: "2032-12-04", expected: 2557},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2025-12-03", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildIDFor(tt.date)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("buildIDFor(%q) = %d, want %d", tt.date, got, tt.expected)
			}
		})
	}
}

func TestIdentifier(t *testing.T) {
	old := BuildCommit
	defer func() { BuildCommit = old }()

	BuildCommit = ""
	if got := Identifier(); got != "unknown" {
		t.Errorf("Identifier() = %q, want unknown", got)
	}

	BuildCommit = "abc1234"
	if got := Identifier(); got != "abc1234" {
		t.Errorf("Identifier() = %q, want abc1234", got)
	}
}

func TestString_ContainsFormatVersion(t *testing.T) {
	if s := String(); !strings.Contains(s, FormatVersion) {
		t.Errorf("String() = %q, must mention %s", s, FormatVersion)
	}
}
