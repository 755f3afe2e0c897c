package descriptor

import "strconv"

// Path returns the positional key of the i-th child under parent.
// Roots have an empty parent.
func Path(parent string, i int) string {
	if parent == "" {
		return strconv.Itoa(i)
	}
	return parent + "." + strconv.Itoa(i)
}
