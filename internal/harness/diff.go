package harness

import "github.com/pmezard/go-difflib/difflib"

// unifiedDiff renders a classic unified patch between two texts so that
// expectation mismatches report the changed lines instead of dumping
// both texts whole.
func unifiedDiff(fromFile, toFile, from, to string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
