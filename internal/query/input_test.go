package query

import (
	"reflect"
	"testing"
)

func TestParseMinSalary(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"", nil},
		{"abc", nil},
		{"-", nil},
		{"90000", intPtr(90000)},
		{" 75000 ", intPtr(75000)},
		{"90000abc", intPtr(90000)},
		{"-5", intPtr(-5)},
		{"99999999999999999999999", nil},
	}
	for _, tt := range tests {
		got := ParseMinSalary(tt.raw)
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Errorf("ParseMinSalary(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseLocation(t *testing.T) {
	if ParseLocation("") != nil || ParseLocation("  ") != nil || ParseLocation("all") != nil {
		t.Error("blank or all should mean no location filter")
	}
	for _, raw := range []string{" all ", "All", "\tALL\n"} {
		if got := ParseLocation(raw); got != nil {
			t.Errorf("ParseLocation(%q) = %q, want no filter", raw, *got)
		}
	}
	if got := ParseLocation("Remote"); got == nil || *got != "Remote" {
		t.Errorf("ParseLocation(Remote) = %v", got)
	}
}

func TestParseSkills(t *testing.T) {
	got := ParseSkills(" Python, SQL ,, docker ,")
	if want := []string{"python", "sql", "docker"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSkills = %v, want %v", got, want)
	}
	if got := ParseSkills(""); len(got) != 0 {
		t.Errorf("ParseSkills(\"\") = %v, want empty", got)
	}
}
