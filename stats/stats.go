// Package stats summarizes a roster.
package stats

import (
	"sort"

	"github.com/tsawler/cardsheet/model"
	"github.com/tsawler/cardsheet/pages"
)

// Count is the number of records sharing a value.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Summary holds aggregate counts for a set of records.
type Summary struct {
	Total        int     `json:"total"`
	Pages        int     `json:"pages,omitempty"`
	Departments  []Count `json:"departments"`
	Quotas       []Count `json:"quotas"`
	Communities  []Count `json:"communities"`
	Batches      []Count `json:"batches"`
	MissingTypes int     `json:"missing_types"`
}

// Compute counts records by department, quota, community and batch.
// Counts are ordered by descending count, then value.
func Compute(records []model.StudentRecord) Summary {
	dept := map[string]int{}
	quota := map[string]int{}
	comm := map[string]int{}
	batch := map[string]int{}

	s := Summary{Total: len(records)}
	for _, r := range records {
		dept[r.Department]++
		quota[r.Quota]++
		comm[r.Community]++
		batch[r.Batch]++
		if r.Type == "" {
			s.MissingTypes++
		}
	}
	s.Departments = sorted(dept)
	s.Quotas = sorted(quota)
	s.Communities = sorted(comm)
	s.Batches = sorted(batch)
	return s
}

// WithPages returns s with the page count for the given capacity.
func (s Summary) WithPages(capacity int) Summary {
	s.Pages = pages.Count(s.Total, capacity)
	return s
}

// Of returns the count recorded for value, or 0.
func Of(counts []Count, value string) int {
	for _, c := range counts {
		if c.Value == value {
			return c.Count
		}
	}
	return 0
}

func sorted(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for v, n := range m {
		out = append(out, Count{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
