package ident

import "strings"

// Path is an ordered sequence of identifiers. A nil or empty Path denotes
// "self" (§3, §6 path grammar).
type Path []Identifier

// ParsePath splits a "/"-separated string into a Path. Leading, trailing,
// and consecutive separators produce empty segments, which are silently
// dropped (§6: "An empty path is valid and denotes self. ... produce empty
// segments which are ignored.").
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, "/")
	out := make(Path, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, Identifier(p))
	}
	return out
}

// String renders the path back into its "/"-separated form.
func (p Path) String() string {
	segs := make([]string, len(p))
	for i, id := range p {
		segs[i] = string(id)
	}
	return strings.Join(segs, "/")
}

// Head returns the first segment and the remaining path. Ok is false for an
// empty path.
func (p Path) Head() (id Identifier, rest Path, ok bool) {
	if len(p) == 0 {
		return "", nil, false
	}
	return p[0], p[1:], true
}

// Empty reports whether the path denotes self.
func (p Path) Empty() bool {
	return len(p) == 0
}
