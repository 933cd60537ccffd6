// internal/colors/colors.go
//
// Fixed color tables for the challenge generator.
//
// Responsibilities:
//   - Hold the closed colorKey → display-color lookup (singles, mixed pairs,
//     one triple). Display values are pre-enumerated, never computed by
//     blending at runtime.
//   - Provide the per-difficulty combination tables (easy/medium/hard).
//   - Provide the pattern list and the canonical key builder.
//
// Constraints:
//   • Every combination reachable from any difficulty table must have its
//     canonical key present in the lookup table.
//   • Keys are the alphabetically sorted, "+"-joined color names.

package colors

import (
	"sort"
	"strings"
)

// lookup maps a canonical colorKey to its display value.
var lookup = map[string]string{
	"red":    "#FF5252",
	"yellow": "#FFD600",
	"blue":   "#42A5F5",
	"black":  "#424242",
	"white":  "#FAFAFA",

	"blue+red":        "#9C27B0",
	"red+yellow":      "#FF9800",
	"blue+yellow":     "#66BB6A",
	"blue+red+yellow": "#8D6E63",

	"black+red":    "#B71C1C",
	"black+yellow": "#827717",
	"black+blue":   "#1A237E",
	"red+white":    "#FFCDD2",
	"white+yellow": "#FFF9C4",
	"blue+white":   "#BBDEFB",
	"black+white":  "#9E9E9E",
}

// combos holds the combination table for each difficulty.
var combos = map[string][][]string{
	"easy": {
		{"red"}, {"yellow"}, {"blue"},
	},
	"medium": {
		{"red", "blue"}, {"red", "yellow"}, {"blue", "yellow"},
	},
	"hard": {
		{"red"}, {"yellow"}, {"blue"}, {"black"}, {"white"},
		{"red", "blue"}, {"red", "yellow"}, {"blue", "yellow"},
		{"black", "red"}, {"black", "blue"},
		{"red", "white"}, {"blue", "white"},
		{"red", "yellow", "blue"},
	},
}

// patterns are the target patterns a challenge can ask for.
var patterns = []string{"dots", "stripes", "grid"}

// Combos returns the combination table for mode.
// Unrecognized modes fall back to medium.
func Combos(mode string) [][]string {
	if c, ok := combos[mode]; ok {
		return c
	}
	return combos["medium"]
}

// Patterns returns the pattern list.
func Patterns() []string { return patterns }

// Key builds the canonical colorKey for a combination:
// color names sorted alphabetically and joined with "+".
func Key(combo []string) string {
	names := append([]string(nil), combo...)
	sort.Strings(names)
	return strings.Join(names, "+")
}

// Display resolves a canonical colorKey to its display value.
func Display(key string) (string, bool) {
	v, ok := lookup[key]
	return v, ok
}

// Modes returns the known difficulty names.
func Modes() []string {
	out := make([]string, 0, len(combos))
	for m := range combos {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Stats returns counts of loaded tables: (lookup entries, patterns).
func Stats() (lookupCount int, patternCount int) {
	return len(lookup), len(patterns)
}
