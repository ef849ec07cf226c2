package layout

import "golang.org/x/text/unicode/norm"

// WrapName splits a display name into at most two lines. The first line
// holds the first width characters; anything left over becomes the second
// line as-is, with no further wrapping, truncation or shrinking.
//
// Characters are counted as code points after NFC normalization, so a
// decomposed accent never lands on its own line.
func WrapName(name string, width int) []string {
	name = norm.NFC.String(name)
	runes := []rune(name)
	if width < 1 || len(runes) <= width {
		return []string{name}
	}
	return []string{string(runes[:width]), string(runes[width:])}
}
