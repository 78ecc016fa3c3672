// Package catalog holds the job records the search engine is built from. A
// record's identifier is its position in the loaded slice and never changes.
package catalog

import "strings"

// JobRecord is a single job listing.
type JobRecord struct {
	Title       string   `json:"title" yaml:"title"`
	Company     string   `json:"company" yaml:"company"`
	Salary      int      `json:"salary" yaml:"salary"`
	Location    string   `json:"location" yaml:"location"`
	Skills      []string `json:"skills" yaml:"skills"`
	Description string   `json:"description" yaml:"description"`
}

// HasSkill reports whether the record lists skill, ignoring case.
func (r JobRecord) HasSkill(skill string) bool {
	for _, s := range r.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

// clone returns r with its own copy of Skills.
func (r JobRecord) clone() JobRecord {
	r.Skills = append([]string(nil), r.Skills...)
	return r
}

// Store is the fixed list of records. Ids are indices into the list.
type Store struct {
	records []JobRecord
}

// NewStore copies records into a new Store. Skill slices are copied too so
// later changes by the caller cannot reach the store.
func NewStore(records []JobRecord) *Store {
	out := make([]JobRecord, len(records))
	for i, r := range records {
		out[i] = r.clone()
	}
	return &Store{records: out}
}

func (s *Store) Len() int {
	return len(s.records)
}

// Get returns a copy of the record with the given id. Records leaving the
// store never share memory with it.
func (s *Store) Get(id int) (JobRecord, bool) {
	if id < 0 || id >= len(s.records) {
		return JobRecord{}, false
	}
	return s.records[id].clone(), true
}

// All returns every record in load order.
func (s *Store) All() []JobRecord {
	out := make([]JobRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.clone()
	}
	return out
}

// Select maps ids to records, skipping ids that do not exist.
func (s *Store) Select(ids []int) []JobRecord {
	out := make([]JobRecord, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.Get(id); ok {
			out = append(out, r)
		}
	}
	return out
}
