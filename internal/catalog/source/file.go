package source

import (
	"fmt"
	"os"

	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/catalog"
	"gopkg.in/yaml.v3"
)

// recordFile is the on-disk layout:
//
//	jobs:
//	  - title: Data Scientist
//	    salary: 90000
//	    skills: [Python, SQL]
//
// A bare top-level list is accepted too. JSON files parse the same way.
type recordFile struct {
	Jobs []catalog.JobRecord `yaml:"jobs"`
}

// ReadFile parses the YAML or JSON record file at path.
func ReadFile(path string) ([]catalog.JobRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a record document.
func Parse(data []byte) ([]catalog.JobRecord, error) {
	var list []catalog.JobRecord
	if err := yaml.Unmarshal(data, &list); err == nil {
		return nonNil(list), nil
	}
	var doc recordFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing record file: %w", err)
	}
	return nonNil(doc.Jobs), nil
}

func nonNil(records []catalog.JobRecord) []catalog.JobRecord {
	if records == nil {
		return []catalog.JobRecord{}
	}
	return records
}
