// Package normalize maps heterogeneous spreadsheet layouts onto the
// canonical capability schema. Source files name their columns
// inconsistently (synonyms, punctuation, casing) and bury the real header
// under leading metadata rows; this package cleans the header, matches it
// against a column alias table, and attaches the source lab identity to
// every row. Cell values pass through unmodified.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Canonical column names.
const (
	ColSerialNo     = "s_no"
	ColDiscipline   = "discipline_group"
	ColMaterials    = "materials_products_tested"
	ColTestName     = "test_name"
	ColTestStandard = "test_standard"
	ColLabName      = "lab_name"
)

// RequiredColumns must all be present after normalization for a file to be
// ingested. lab_name is appended by the normalizer itself, so in practice
// a file fails only on test_name or test_standard.
var RequiredColumns = []string{ColTestName, ColTestStandard, ColLabName}

// columnAliases maps each canonical column to the known header variants
// observed across source labs. Matching is by substring containment on the
// cleaned label, evaluated in this order.
var columnAliases = []struct {
	canonical string
	variants  []string
}{
	{ColSerialNo, []string{
		"s.no", "s_no", "sr_no", "sl_no", "serial_no",
	}},
	{ColDiscipline, []string{
		"discipline   group",
		"discipline_group",
		"discipline",
		"group",
		"facility",
		"testing facility",
	}},
	{ColMaterials, []string{
		"materials or products tested",
		"materials tested",
		"products tested",
		"material   product",
		"materials_products_tested",
	}},
	{ColTestName, []string{
		"component, parameter or characteristic tested   specific test performed   tests or type of testsperformed",
		"component parameter or characteristic tested",
		"specific test performed",
		"tests or type of testsperformed",
		"test performed",
		"type of test",
		"test name",
	}},
	{ColTestStandard, []string{
		"test method specification against which tests areperformed and   or thetechniques   equipmentused",
		"test method specification",
		"test standard",
		"standard",
		"specification",
		"test method",
	}},
}

var snakeRe = regexp.MustCompile(`\s+`)

// cleanLabel strips and lower-cases a header label and collapses its
// slash, dash, and ampersand variants the way the alias table expects.
func cleanLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "&", "and")
	return s
}

// NormalizeColumn maps one raw header label to its canonical column name.
// Unmatched labels are snake-cased and passed through unchanged rather
// than dropped, so later stages can detect missing required columns.
func NormalizeColumn(label string) string {
	clean := cleanLabel(label)
	for _, alias := range columnAliases {
		for _, v := range alias.variants {
			if strings.Contains(clean, v) {
				return alias.canonical
			}
		}
	}
	return snakeRe.ReplaceAllString(clean, "_")
}

// NormalizeColumns maps a whole header row. When two raw labels normalize
// to the same canonical name, the first occurrence keeps it and later ones
// get positional fallback names so no column is silently lost.
func NormalizeColumns(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, label := range header {
		name := NormalizeColumn(label)
		if name == "" || seen[name] {
			name = positionalName(name, i)
		}
		seen[name] = true
		out[i] = name
	}
	return out
}

func positionalName(base string, i int) string {
	if base == "" {
		base = "column"
	}
	return base + "_" + strconv.Itoa(i)
}
