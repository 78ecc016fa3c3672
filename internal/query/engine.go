// Package query combines the prefix and attribute indexes into the job search
// engine. An Engine is built once from a record list and only read afterwards,
// which makes it safe to share between goroutines.
package query

import (
	"strings"

	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/catalog"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/index"
)

// Criteria selects records by attribute. A nil field applies no filter.
type Criteria struct {
	Location  *string `json:"location,omitempty"`
	MinSalary *int    `json:"min_salary,omitempty"`
}

type Engine struct {
	store     *catalog.Store
	titles    *index.PrefixIndex
	locations *index.LocationIndex
	salaries  *index.SalaryIndex
}

// Load builds every index over records. Record ids are slice positions.
func Load(records []catalog.JobRecord) *Engine {
	e := &Engine{
		store:     catalog.NewStore(records),
		titles:    index.NewPrefixIndex(),
		locations: index.NewLocationIndex(),
		salaries:  index.NewSalaryIndex(),
	}
	for id, r := range e.store.All() {
		e.titles.Insert(r.Title, id)
		e.locations.Add(r.Location, id)
		e.salaries.Add(r.Salary, id)
	}
	return e
}

func (e *Engine) Len() int {
	return e.store.Len()
}

// All returns every record in load order.
func (e *Engine) All() []catalog.JobRecord {
	return e.store.All()
}

func (e *Engine) Record(id int) (catalog.JobRecord, bool) {
	return e.store.Get(id)
}

// SearchByTitle returns the records whose title starts with prefix, ignoring
// case. A blank prefix returns all records in load order.
func (e *Engine) SearchByTitle(prefix string) []catalog.JobRecord {
	if strings.TrimSpace(prefix) == "" {
		return e.store.All()
	}
	return e.store.Select(e.titles.Search(prefix).Sorted())
}

// Filter intersects the location and salary lookups selected by c.
func (e *Engine) Filter(c Criteria) []catalog.JobRecord {
	ids := index.Range(e.store.Len())
	if c.Location != nil {
		ids = ids.Intersect(e.locations.Lookup(*c.Location))
	}
	if c.MinSalary != nil {
		ids = ids.Intersect(e.salaries.Lookup(*c.MinSalary))
	}
	return e.store.Select(ids.Sorted())
}

// MatchBySkills returns records sharing at least one skill with skills,
// ignoring case. An empty skill list matches nothing.
func (e *Engine) MatchBySkills(skills []string) []catalog.JobRecord {
	wanted := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		wanted[strings.ToLower(s)] = struct{}{}
	}
	out := make([]catalog.JobRecord, 0)
	if len(wanted) == 0 {
		return out
	}
	for _, r := range e.store.All() {
		for _, s := range r.Skills {
			if _, ok := wanted[strings.ToLower(s)]; ok {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Suggest returns the lowercase titles starting with prefix.
func (e *Engine) Suggest(prefix string) []string {
	return e.titles.Complete(prefix)
}

// Locations returns the distinct record locations, sorted.
func (e *Engine) Locations() []string {
	return e.locations.Locations()
}
