package roster

import (
	"sort"
	"strings"

	"github.com/tsawler/cardsheet/model"
)

// AllDepartments selects every department in Filter.
const AllDepartments = "All"

// Filter returns the records matching query and dept, in roster order.
//
// query matches case-insensitively as a substring of any field; an empty
// query matches everything. dept must equal the department ignoring case
// unless it is empty or AllDepartments.
func Filter(records []model.StudentRecord, query, dept string) []model.StudentRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	dept = strings.TrimSpace(dept)
	anyDept := dept == "" || strings.EqualFold(dept, AllDepartments)

	out := make([]model.StudentRecord, 0, len(records))
	for _, rec := range records {
		if !anyDept && !strings.EqualFold(rec.Department, dept) {
			continue
		}
		if query != "" && !matches(rec, query) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matches(rec model.StudentRecord, query string) bool {
	for _, v := range rec.Fields() {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

// Departments returns the distinct departments, sorted.
func Departments(records []model.StudentRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range records {
		if rec.Department == "" || seen[rec.Department] {
			continue
		}
		seen[rec.Department] = true
		out = append(out, rec.Department)
	}
	sort.Strings(out)
	return out
}
