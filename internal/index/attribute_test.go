package index

import (
	"reflect"
	"testing"
)

func TestBucket(t *testing.T) {
	tests := []struct {
		salary int
		want   int
	}{
		{0, 0},
		{24999, 0},
		{25000, 25000},
		{90000, 75000},
		{110000, 100000},
		{-1, -25000},
		{-25000, -25000},
	}
	for _, tt := range tests {
		if got := Bucket(tt.salary); got != tt.want {
			t.Errorf("Bucket(%d) = %d, want %d", tt.salary, got, tt.want)
		}
	}
}

func TestLocationIndexLookup(t *testing.T) {
	l := NewLocationIndex()
	l.Add("Remote", 0)
	l.Add("Austin, TX", 1)
	l.Add("Remote", 2)

	if got := l.Lookup("Remote").Sorted(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("Lookup(Remote) = %v, want [0 2]", got)
	}
	if got := l.Lookup("remote"); got.Len() != 0 {
		t.Errorf("lookup is exact, got %v for lowercase key", got.Sorted())
	}
	if got := l.Lookup("Mars"); got.Len() != 0 {
		t.Errorf("Lookup(Mars) = %v, want empty", got.Sorted())
	}
	if got, want := l.Locations(), []string{"Austin, TX", "Remote"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Locations() = %v, want %v", got, want)
	}
}

func TestSalaryIndexLookupUsesBucketKeys(t *testing.T) {
	s := NewSalaryIndex()
	s.Add(60000, 0)  // bucket 50000
	s.Add(90000, 1)  // bucket 75000
	s.Add(120000, 2) // bucket 100000

	tests := []struct {
		min  int
		want []int
	}{
		{0, []int{0, 1, 2}},
		{50000, []int{0, 1, 2}},
		{75000, []int{1, 2}},
		// 90000 pays more than 80000 but its bucket key is below the threshold.
		{80000, []int{2}},
		{100001, []int{}},
	}
	for _, tt := range tests {
		if got := s.Lookup(tt.min).Sorted(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Lookup(%d) = %v, want %v", tt.min, got, tt.want)
		}
	}
	if got, want := s.Buckets(), []int{50000, 75000, 100000}; !reflect.DeepEqual(got, want) {
		t.Errorf("Buckets() = %v, want %v", got, want)
	}
}

func TestIDSetIntersect(t *testing.T) {
	a := NewIDSet(1, 2, 3, 4)
	b := NewIDSet(3, 4, 5)
	if got := a.Intersect(b).Sorted(); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("Intersect = %v, want [3 4]", got)
	}
	if got := Range(3).Sorted(); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("Range(3) = %v", got)
	}
}
