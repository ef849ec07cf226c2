package roster

import (
	"reflect"
	"testing"

	"github.com/tsawler/cardsheet/model"
)

var filterRecords = []model.StudentRecord{
	{ID: "24CS001", Name: "Asha Kumar", Department: "CSE", Quota: "GQ", Community: "BC"},
	{ID: "24EC002", Name: "Ravi Shankar", Department: "ECE", Quota: "MQ", Community: "MBC"},
	{ID: "24CS003", Name: "Meena", Department: "CSE", Quota: "MQ", Community: "OC"},
	{ID: "24ME004", Name: "Kumaran", Department: "MECH", Quota: "GQ", Community: "BC"},
}

func ids(records []model.StudentRecord) []string {
	out := []string{}
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		dept  string
		want  []string
	}{
		{"everything", "", "", []string{"24CS001", "24EC002", "24CS003", "24ME004"}},
		{"all departments", "", "all", []string{"24CS001", "24EC002", "24CS003", "24ME004"}},
		{"name substring any case", "KUMAR", "", []string{"24CS001", "24ME004"}},
		{"matches other fields", "mbc", "", []string{"24EC002"}},
		{"department only", "", "cse", []string{"24CS001", "24CS003"}},
		{"query and department", "kumar", "MECH", []string{"24ME004"}},
		{"no match", "zzz", "", []string{}},
		{"unknown department", "", "CIVIL", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(filterRecords, tt.query, tt.dept))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q, %q) = %v, want %v", tt.query, tt.dept, got, tt.want)
			}
		})
	}
}

func TestDepartments(t *testing.T) {
	got := Departments(append(filterRecords, model.StudentRecord{ID: "x"}))
	want := []string{"CSE", "ECE", "MECH"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Departments() = %v, want %v", got, want)
	}
	if got := Departments(nil); len(got) != 0 {
		t.Errorf("Departments(nil) = %v", got)
	}
}
