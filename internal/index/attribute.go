package index

import "sort"

// SalaryBucketSize is the width of a salary bucket.
const SalaryBucketSize = 25000

// LocationIndex maps an exact location string to record ids.
type LocationIndex struct {
	byLocation map[string]IDSet
}

func NewLocationIndex() *LocationIndex {
	return &LocationIndex{byLocation: make(map[string]IDSet)}
}

func (l *LocationIndex) Add(location string, id int) {
	set, ok := l.byLocation[location]
	if !ok {
		set = make(IDSet)
		l.byLocation[location] = set
	}
	set.Add(id)
}

// Lookup returns a copy of the ids at location. Matching is exact and case
// sensitive.
func (l *LocationIndex) Lookup(location string) IDSet {
	set, ok := l.byLocation[location]
	if !ok {
		return make(IDSet)
	}
	return set.Clone()
}

// Locations returns the indexed locations in sorted order.
func (l *LocationIndex) Locations() []string {
	out := make([]string, 0, len(l.byLocation))
	for loc := range l.byLocation {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// SalaryIndex groups record ids into fixed-width salary buckets.
//
// Lookup compares bucket keys, not salaries: a threshold selects every bucket
// whose key is at least the threshold. A job paying 90000 sits in bucket 75000
// and is therefore not returned for a threshold of 80000. This is a known
// approximation of a salary filter.
type SalaryIndex struct {
	byBucket map[int]IDSet
}

func NewSalaryIndex() *SalaryIndex {
	return &SalaryIndex{byBucket: make(map[int]IDSet)}
}

// Bucket returns the bucket key for salary using floor division.
func Bucket(salary int) int {
	q := salary / SalaryBucketSize
	if salary%SalaryBucketSize != 0 && salary < 0 {
		q--
	}
	return q * SalaryBucketSize
}

func (s *SalaryIndex) Add(salary int, id int) {
	key := Bucket(salary)
	set, ok := s.byBucket[key]
	if !ok {
		set = make(IDSet)
		s.byBucket[key] = set
	}
	set.Add(id)
}

// Lookup returns the union of ids over all buckets with key >= minSalary.
func (s *SalaryIndex) Lookup(minSalary int) IDSet {
	out := make(IDSet)
	for key, set := range s.byBucket {
		if key >= minSalary {
			out.UnionInto(set)
		}
	}
	return out
}

// Buckets returns the bucket keys in ascending order.
func (s *SalaryIndex) Buckets() []int {
	out := make([]int, 0, len(s.byBucket))
	for key := range s.byBucket {
		out = append(out, key)
	}
	sort.Ints(out)
	return out
}
