package tree

import "strconv"

// ItemSize returns the per-element byte size encoded in a NumPy-style dtype
// string such as "<f8", "|u1" or ">c16". Fixed-width byte strings ("|S5")
// report their width, unicode ("<U5") four bytes per code point.
// Unrecognized formats fall back to 1 so chunk guessing stays usable.
func ItemSize(dtype string) int {
	s := dtype
	if s == "" {
		return 1
	}
	switch s[0] {
	case '<', '>', '|', '=':
		s = s[1:]
	}
	if len(s) < 2 {
		return 1
	}
	kind := s[0]
	n, err := strconv.Atoi(s[1:])
	if err != nil || n <= 0 {
		return 1
	}
	switch kind {
	case 'b', 'i', 'u', 'f', 'c', 'S', 'V':
		return n
	case 'U':
		return 4 * n
	}
	return 1
}
