package layout

import (
	"reflect"
	"testing"
)

func TestWrapName(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  []string
	}{
		{"Anu", 16, []string{"Anu"}},
		{"", 16, []string{""}},
		{"Exactly16Letters", 16, []string{"Exactly16Letters"}},
		{"Seventeen Letters", 16, []string{"Seventeen Letter", "s"}},
		{"Thisisaverylongstudentname", 16, []string{"Thisisaverylongs", "tudentname"}},
		{"ARUNKUMAR RAMASWAMY KRISHNAMOORTHY SUBRAMANIAN", 16,
			[]string{"ARUNKUMAR RAMASW", "AMY KRISHNAMOORTHY SUBRAMANIAN"}},
		{"Zoë Ångström-Søren", 16, []string{"Zoë Ångström-Sør", "en"}},
		{"no wrap width", 0, []string{"no wrap width"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapName(tt.name, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapName(%q, %d) = %q, want %q", tt.name, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapNameRemainderNotTruncated(t *testing.T) {
	name := "Thisisaverylongstudentname"
	lines := WrapName(name, 16)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if len([]rune(lines[0])) != 16 {
		t.Errorf("first line has %d characters, want 16", len([]rune(lines[0])))
	}
	if len([]rune(lines[1])) != 10 {
		t.Errorf("second line has %d characters, want 10", len([]rune(lines[1])))
	}
	if lines[0]+lines[1] != name {
		t.Errorf("lines %q do not reassemble %q", lines, name)
	}
}

func TestWrapNameNormalizes(t *testing.T) {
	// "e" followed by a combining acute accent at the wrap boundary
	decomposed := "Abcdefghijklmno" + "e\u0301" + "x"
	lines := WrapName(decomposed, 16)
	if len(lines) != 2 || lines[0] != "Abcdefghijklmno\u00e9" || lines[1] != "x" {
		t.Errorf("WrapName(decomposed) = %q", lines)
	}
}
