package stash

import "strings"

// Segment is one step of an access path: a name and the arguments passed
// to it. Name is usually a text scalar; a *List name selects several keys
// or positions at once.
type Segment struct {
	Name Value
	Args []Value
}

// Seg returns a segment named by text.
func Seg(name string, args ...Value) Segment {
	return Segment{Name: String(name), Args: args}
}

// Path is a decomposed identifier such as a.b(1).c.
type Path []Segment

// ParsePath splits a dotted identifier into segments. Any "(...)" call
// suffix is dropped from each segment; call arguments are never parsed
// from text and every segment gets empty arguments.
func ParsePath(ident string) Path {
	parts := strings.Split(ident, ".")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		if i := strings.IndexByte(part, '('); i >= 0 {
			part = part[:i]
		}
		path = append(path, Segment{Name: String(part)})
	}
	return path
}

// identPath normalizes a text identifier. A dotted identifier is parsed;
// a plain name becomes a single segment carrying args.
func identPath(ident string, args []Value) Path {
	if strings.Contains(ident, ".") {
		return ParsePath(ident)
	}
	return Path{{Name: String(ident), Args: args}}
}

// String renders the path in dotted form.
func (p Path) String() string {
	names := make([]string, 0, len(p))
	for _, seg := range p {
		names = append(names, Text(seg.Name))
	}
	return strings.Join(names, ".")
}
