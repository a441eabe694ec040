package floss

import (
	"cmp"
	"slices"
	"strconv"
)

// CompareNames orders floss names: non-numeric names first in byte order, then
// numeric names by value, ties between equal values ("05", "5") in byte order.
func CompareNames(a, b string) int {
	na, aNumeric := numericName(a)
	nb, bNumeric := numericName(b)

	switch {
	case aNumeric && bNumeric:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	case aNumeric:
		return 1
	case bNumeric:
		return -1
	default:
		return cmp.Compare(a, b)
	}
}

// SortNames sorts names in place by CompareNames.
func SortNames(names []string) {
	slices.SortStableFunc(names, CompareNames)
}

// Sorted returns a copy of flosses ordered by name.
func Sorted(flosses []Floss) []Floss {
	out := slices.Clone(flosses)
	slices.SortStableFunc(out, func(a, b Floss) int {
		return CompareNames(a.name, b.name)
	})
	return out
}

func numericName(name string) (uint64, bool) {
	n, err := strconv.ParseUint(name, 10, 64)
	return n, err == nil
}
