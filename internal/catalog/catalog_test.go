package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestStore(t *testing.T) {
	s := NewStore(Seed())
	if s.Len() != 15 {
		t.Fatalf("Len = %d, want 15", s.Len())
	}
	r, ok := s.Get(1)
	if !ok || r.Title != "Data Scientist" {
		t.Errorf("Get(1) = %+v, %v", r, ok)
	}
	if _, ok := s.Get(-1); ok {
		t.Error("Get(-1) should fail")
	}
	got := s.Select([]int{2, 99, 0})
	if len(got) != 2 || got[0].Title != "Web Developer" || got[1].Title != "Software Engineer" {
		t.Errorf("Select = %+v", got)
	}
}

func TestHasSkill(t *testing.T) {
	r := JobRecord{Skills: []string{"Machine Learning", "SQL"}}
	if !r.HasSkill("sql") || !r.HasSkill("machine learning") || r.HasSkill("python") {
		t.Error("HasSkill should be case insensitive and exact")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Seed()); err != nil {
		t.Fatalf("seed invalid: %v", err)
	}
	err := Validate([]JobRecord{
		{Title: "ok"},
		{Title: "  "},
		{Title: strings.Repeat("x", maxTitleLength+1), Skills: []string{"Go", ""}},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v", err)
	}
	for _, field := range []string{"records[1].title", "records[2].title", "records[2].skills[1]"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("missing %s in %v", field, verr.Fields)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(Seed())
	if a != Fingerprint(Seed()) {
		t.Error("fingerprint not deterministic")
	}
	changed := Seed()
	changed[0].Salary++
	if a == Fingerprint(changed) {
		t.Error("fingerprint ignores salary")
	}
	if len(a) != 16 {
		t.Errorf("fingerprint %q should be 16 hex chars", a)
	}
}
