package pages

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/tsawler/cardsheet/config"
	"github.com/tsawler/cardsheet/layout"
	"github.com/tsawler/cardsheet/model"
)

func makeRecords(n int) []model.StudentRecord {
	records := make([]model.StudentRecord, n)
	for i := range records {
		records[i] = model.StudentRecord{
			ID:         fmt.Sprintf("24CS%03d", i+1),
			Name:       fmt.Sprintf("Student %d", i+1),
			Department: "CSE",
		}
	}
	return records
}

func gridWithRows(t *testing.T, rows int) *layout.Grid {
	t.Helper()
	cfg := config.Default()
	cfg.Grid.Rows = rows
	g, err := layout.NewGrid(cfg)
	if err != nil {
		t.Fatalf("NewGrid() error: %v", err)
	}
	return g
}

func TestCount(t *testing.T) {
	tests := []struct {
		n, capacity, want int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{25, 12, 3},
		{25, 10, 3},
		{30, 10, 3},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := Count(tt.n, tt.capacity); got != tt.want {
			t.Errorf("Count(%d, %d) = %d, want %d", tt.n, tt.capacity, got, tt.want)
		}
	}
}

func TestAllocateDistribution(t *testing.T) {
	tests := []struct {
		name string
		n    int
		rows int
		want []int
	}{
		{"25 records capacity 12", 25, 6, []int{12, 12, 1}},
		{"24 records capacity 12", 24, 6, []int{12, 12}},
		{"25 records capacity 10", 25, 5, []int{10, 10, 5}},
		{"single record", 1, 5, []int{1}},
		{"empty", 0, 5, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridWithRows(t, tt.rows)
			pages := Allocate(makeRecords(tt.n), g)
			got := Distribution(pages)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Distribution = %v, want %v", got, tt.want)
			}
			if len(pages) != Count(tt.n, g.Capacity()) {
				t.Errorf("page count %d, want %d", len(pages), Count(tt.n, g.Capacity()))
			}
		})
	}
}

func TestAllocatePreservesOrder(t *testing.T) {
	records := makeRecords(25)
	g := gridWithRows(t, 6)
	pages := Allocate(records, g)

	i := 0
	for _, p := range pages {
		for _, slot := range p.Slots {
			if slot.Record != records[i] {
				t.Fatalf("slot %d/%d holds %q, want %q", p.Index, slot.Index, slot.Record.ID, records[i].ID)
			}
			i++
		}
	}
	if i != len(records) {
		t.Errorf("allocated %d records, want %d", i, len(records))
	}
}

func TestAllocateSlotGeometry(t *testing.T) {
	g := gridWithRows(t, 6)
	pages := Allocate(makeRecords(30), g)
	p := g.Capacity()

	for _, page := range pages {
		seen := make(map[[2]int]bool)
		for k, slot := range page.Slots {
			global := page.Index*p + k
			if slot.Page != page.Index {
				t.Errorf("slot page = %d, want %d", slot.Page, page.Index)
			}
			if slot.Index != global%p {
				t.Errorf("record %d: slot index %d, want %d", global, slot.Index, global%p)
			}
			if slot.Row != (global%p)/2 || slot.Col != (global%p)%2 {
				t.Errorf("record %d: row/col (%d, %d)", global, slot.Row, slot.Col)
			}
			if slot.Box != g.Slot(slot.Index) {
				t.Errorf("record %d: box %+v, want %+v", global, slot.Box, g.Slot(slot.Index))
			}
			key := [2]int{slot.Row, slot.Col}
			if seen[key] {
				t.Errorf("page %d: duplicate position %v", page.Index, key)
			}
			seen[key] = true
		}
	}
}

func TestAllocateDeterministic(t *testing.T) {
	records := makeRecords(23)
	g := gridWithRows(t, 5)
	first := Allocate(records, g)
	second := Allocate(records, g)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated allocation produced different pages")
	}
}
