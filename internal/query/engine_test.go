package query

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/catalog"
)

func titles(records []catalog.JobRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Title)
	}
	return out
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestSingleRecordExample(t *testing.T) {
	e := Load([]catalog.JobRecord{
		{Title: "Data Scientist", Salary: 90000, Location: "NY", Skills: []string{"Python"}},
	})

	if got := titles(e.SearchByTitle("data")); !reflect.DeepEqual(got, []string{"Data Scientist"}) {
		t.Errorf("SearchByTitle(data) = %v", got)
	}
	if got := e.Filter(Criteria{MinSalary: intPtr(100000)}); len(got) != 0 {
		t.Errorf("Filter(min 100000) = %v, want empty", titles(got))
	}
	if got := titles(e.MatchBySkills([]string{"python"})); !reflect.DeepEqual(got, []string{"Data Scientist"}) {
		t.Errorf("MatchBySkills(python) = %v", got)
	}
}

func TestSearchByTitleBlankReturnsAllInOrder(t *testing.T) {
	e := Load(catalog.Seed())
	want := titles(catalog.Seed())
	for _, q := range []string{"", "   ", "\t"} {
		if got := titles(e.SearchByTitle(q)); !reflect.DeepEqual(got, want) {
			t.Errorf("SearchByTitle(%q) = %v, want all records", q, got)
		}
	}
}

func TestSearchByTitleMatchesExactlyPrefixedTitles(t *testing.T) {
	seed := catalog.Seed()
	e := Load(seed)
	for _, prefix := range []string{"d", "Data", "DATABASE", "web ", "ai", "it s", "cloud architect", "x", "software engineers"} {
		got := make(map[string]bool)
		for _, r := range e.SearchByTitle(prefix) {
			if !strings.HasPrefix(strings.ToLower(r.Title), strings.ToLower(prefix)) {
				t.Errorf("SearchByTitle(%q) returned %q", prefix, r.Title)
			}
			got[r.Title] = true
		}
		for _, r := range seed {
			if strings.HasPrefix(strings.ToLower(r.Title), strings.ToLower(prefix)) && !got[r.Title] {
				t.Errorf("SearchByTitle(%q) omitted %q", prefix, r.Title)
			}
		}
	}
}

func TestFilter(t *testing.T) {
	seed := catalog.Seed()
	e := Load(seed)

	t.Run("no criteria returns all", func(t *testing.T) {
		if got := e.Filter(Criteria{}); len(got) != len(seed) {
			t.Errorf("got %d records, want %d", len(got), len(seed))
		}
	})

	t.Run("location is exact", func(t *testing.T) {
		for _, loc := range append(e.Locations(), "Nowhere", "remote") {
			var want []string
			for _, r := range seed {
				if r.Location == loc {
					want = append(want, r.Title)
				}
			}
			got := e.Filter(Criteria{Location: strPtr(loc)})
			if len(got) != len(want) {
				t.Fatalf("Filter(%q) = %v, want %v", loc, titles(got), want)
			}
			for i := range got {
				if got[i].Title != want[i] {
					t.Errorf("Filter(%q)[%d] = %q, want %q", loc, i, got[i].Title, want[i])
				}
			}
		}
	})

	t.Run("location and salary intersect", func(t *testing.T) {
		got := titles(e.Filter(Criteria{Location: strPtr("Remote"), MinSalary: intPtr(50000)}))
		want := []string{"Web Developer", "Technical Writer", "Game Developer"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
		if got := e.Filter(Criteria{Location: strPtr("Remote"), MinSalary: intPtr(75000)}); len(got) != 0 {
			t.Errorf("got %v, want empty", titles(got))
		}
	})

	t.Run("salary compares bucket keys", func(t *testing.T) {
		got := titles(e.Filter(Criteria{MinSalary: intPtr(100000)}))
		want := []string{"AI Researcher", "Cloud Architect"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
		// Product Manager pays 95000 but sits in the 75000 bucket.
		for _, title := range titles(e.Filter(Criteria{MinSalary: intPtr(90000)})) {
			if title == "Product Manager" {
				t.Error("95000 job matched threshold 90000 despite bucket key 75000")
			}
		}
	})
}

func TestMatchBySkills(t *testing.T) {
	e := Load(catalog.Seed())

	if got := e.MatchBySkills(nil); len(got) != 0 {
		t.Errorf("MatchBySkills(nil) = %v, want empty", titles(got))
	}
	if got := e.MatchBySkills([]string{}); len(got) != 0 {
		t.Errorf("MatchBySkills([]) = %v, want empty", titles(got))
	}

	got := titles(e.MatchBySkills([]string{"PYTHON", "docker"}))
	want := []string{"Software Engineer", "Data Scientist", "DevOps Engineer", "AI Researcher", "Security Analyst"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchBySkills(python, docker) = %v, want %v", got, want)
	}
	if got := e.MatchBySkills([]string{"cobol"}); len(got) != 0 {
		t.Errorf("MatchBySkills(cobol) = %v, want empty", titles(got))
	}
}

func TestQueriesAreIdempotent(t *testing.T) {
	e := Load(catalog.Seed())
	c := Criteria{MinSalary: intPtr(50000)}
	for i := 0; i < 3; i++ {
		if !reflect.DeepEqual(e.SearchByTitle("d"), e.SearchByTitle("d")) {
			t.Fatal("SearchByTitle not idempotent")
		}
		if !reflect.DeepEqual(e.Filter(c), e.Filter(c)) {
			t.Fatal("Filter not idempotent")
		}
		if !reflect.DeepEqual(e.MatchBySkills([]string{"sql"}), e.MatchBySkills([]string{"sql"})) {
			t.Fatal("MatchBySkills not idempotent")
		}
	}
}

func TestLoadCopiesRecords(t *testing.T) {
	records := []catalog.JobRecord{{Title: "Game Developer", Skills: []string{"Unity"}}}
	e := Load(records)
	records[0].Title = "Changed"
	records[0].Skills[0] = "Changed"

	r, ok := e.Record(0)
	if !ok || r.Title != "Game Developer" || r.Skills[0] != "Unity" {
		t.Errorf("engine record changed with caller slice: %+v", r)
	}
	if _, ok := e.Record(1); ok {
		t.Error("Record(1) should not exist")
	}
}

func TestResultsDoNotAliasRecords(t *testing.T) {
	e := Load(catalog.Seed())

	res := e.SearchByTitle("data")
	res[0].Skills[0] = "Cobol"
	e.All()[1].Skills[1] = "Cobol"
	if r, ok := e.Record(1); ok {
		r.Skills[2] = "Cobol"
	}

	if got := titles(e.MatchBySkills([]string{"python"})); len(got) != 4 {
		t.Errorf("MatchBySkills(python) = %v, want 4 records", got)
	}
	r, _ := e.Record(1)
	if strings.Join(r.Skills, ",") != "Python,Machine Learning,SQL" {
		t.Errorf("stored skills changed: %v", r.Skills)
	}
	if got := e.MatchBySkills([]string{"cobol"}); len(got) != 0 {
		t.Errorf("MatchBySkills(cobol) = %v, want none", titles(got))
	}
}

func TestEmptyEngine(t *testing.T) {
	e := Load(nil)
	if e.Len() != 0 || len(e.SearchByTitle("")) != 0 || len(e.Filter(Criteria{})) != 0 {
		t.Error("empty engine returned records")
	}
}
