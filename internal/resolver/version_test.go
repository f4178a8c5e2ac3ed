// Where: internal/resolver/version_test.go
// What: Tests for version parsing and bound checks.
// Why: Rule selection depends on exact bound semantics.
package resolver

import (
	"errors"
	"testing"
)

func TestParseVersionForms(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2.1.3", "2.1.3"},
		{"2.0", "2.0"},
		{"2022", "2022"},
		{"12.0v3", "12.0.3"},
		{"2024.2 update", "2024.2"},
	}
	for _, tc := range cases {
		v, err := ParseVersion(tc.raw)
		if err != nil {
			t.Fatalf("ParseVersion(%q): %v", tc.raw, err)
		}
		if v.String() != tc.want {
			t.Fatalf("ParseVersion(%q) = %s, want %s", tc.raw, v, tc.want)
		}
	}
}

func TestParseVersionFailure(t *testing.T) {
	for _, raw := range []string{"", "latest", "v", "v2022", "maya 2024.2"} {
		if _, err := ParseVersion(raw); !errors.Is(err, ErrVersionParse) {
			t.Fatalf("ParseVersion(%q) err = %v, want ErrVersionParse", raw, err)
		}
	}
}

func TestCompareMissingComponentSortsLower(t *testing.T) {
	short, err := ParseVersion("1.2")
	if err != nil {
		t.Fatal(err)
	}
	long, err := ParseVersion("1.2.0")
	if err != nil {
		t.Fatal(err)
	}
	if short.Compare(long) != -1 {
		t.Fatalf("expected 1.2 < 1.2.0")
	}
	if long.Compare(short) != 1 {
		t.Fatalf("expected 1.2.0 > 1.2")
	}
}

func TestMinCheck(t *testing.T) {
	cases := []struct {
		current string
		minimum string
		want    bool
	}{
		{"2.1.3", "2.0", true},
		{"1.9", "2.0", false},
		{"2.0", "2.0", true},
		{"10.0", "9.5", true},
		{"2.1.3", "", true},
	}
	for _, tc := range cases {
		got, err := MinCheck(tc.current, tc.minimum)
		if err != nil {
			t.Fatalf("MinCheck(%q, %q): %v", tc.current, tc.minimum, err)
		}
		if got != tc.want {
			t.Fatalf("MinCheck(%q, %q) = %v, want %v", tc.current, tc.minimum, got, tc.want)
		}
	}
}

func TestMaxCheck(t *testing.T) {
	cases := []struct {
		current string
		maximum string
		want    bool
	}{
		{"2.1.3", "3.0", true},
		{"3.1", "3.0", false},
		{"3.0", "3.0", true},
		{"2.1.3", "", true},
	}
	for _, tc := range cases {
		got, err := MaxCheck(tc.current, tc.maximum)
		if err != nil {
			t.Fatalf("MaxCheck(%q, %q): %v", tc.current, tc.maximum, err)
		}
		if got != tc.want {
			t.Fatalf("MaxCheck(%q, %q) = %v, want %v", tc.current, tc.maximum, got, tc.want)
		}
	}
}

func TestBoundChecksFailLoudlyOnUnparseableVersion(t *testing.T) {
	if _, err := MinCheck("latest", "2.0"); !errors.Is(err, ErrVersionParse) {
		t.Fatalf("expected ErrVersionParse, got %v", err)
	}
	if _, err := MaxCheck("2.0", "not-a-version"); !errors.Is(err, ErrVersionParse) {
		t.Fatalf("expected ErrVersionParse, got %v", err)
	}
	// An absent bound never forces a parse of the current version.
	if ok, err := MinCheck("latest", ""); err != nil || !ok {
		t.Fatalf("empty bound should pass, got ok=%v err=%v", ok, err)
	}
}
