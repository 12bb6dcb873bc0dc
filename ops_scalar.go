package stash

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// maxRepeatLength bounds the text produced by repeat.
const maxRepeatLength = 1 << 24

var backreferencePattern = regexp2.MustCompile(`\$\d+`, regexp2.None)

var scalarOps = map[string]ScalarOp{
	"item":    scalarItem,
	"list":    scalarList,
	"hash":    scalarHash,
	"length":  scalarLength,
	"size":    scalarSize,
	"defined": scalarDefined,
	"match":   scalarMatch,
	"search":  scalarSearch,
	"repeat":  scalarRepeat,
	"replace": scalarReplace,
	"remove":  scalarRemove,
	"split":   scalarSplit,
	"chunk":   scalarChunk,
	"substr":  scalarSubstr,
}

func scalarItem(s Scalar, args ...Value) (Value, error) {
	return s, nil
}

func scalarList(s Scalar, args ...Value) (Value, error) {
	return NewList(s), nil
}

func scalarHash(s Scalar, args ...Value) (Value, error) {
	return MappingOf(map[string]Value{"value": s}), nil
}

func scalarLength(s Scalar, args ...Value) (Value, error) {
	return Int(int64(utf8.RuneCountInString(s.Text()))), nil
}

func scalarSize(s Scalar, args ...Value) (Value, error) {
	return Int(1), nil
}

func scalarDefined(s Scalar, args ...Value) (Value, error) {
	return Bool(true), nil
}

// scalarMatch returns the capture groups of the first match, or of every
// match when the second argument is true. Without groups a global match
// returns the whole matches. No match yields empty text.
func scalarMatch(s Scalar, args ...Value) (Value, error) {
	pattern := arg(args, 0)
	if IsUndefined(pattern) {
		return Empty, nil
	}
	re, err := compilePattern("match", Text(pattern))
	if err != nil {
		return nil, err
	}
	matchAll := Truthy(arg(args, 1))

	var matches []Value
	m, err := re.FindStringMatch(s.Text())
	for err == nil && m != nil {
		groups := m.Groups()
		if len(groups) == 1 {
			if matchAll {
				matches = append(matches, String(m.String()))
			}
		} else {
			for _, g := range groups[1:] {
				matches = append(matches, groupValue(g))
			}
		}
		if !matchAll {
			break
		}
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, invalidArgument("match", err)
	}
	if len(matches) == 0 {
		return Empty, nil
	}
	return NewList(matches...), nil
}

func scalarSearch(s Scalar, args ...Value) (Value, error) {
	pattern := arg(args, 0)
	if IsUndefined(pattern) {
		return s, nil
	}
	re, err := compilePattern("search", Text(pattern))
	if err != nil {
		return nil, err
	}
	found, err := re.MatchString(s.Text())
	if err != nil {
		return nil, invalidArgument("search", err)
	}
	return Bool(found), nil
}

func scalarRepeat(s Scalar, args ...Value) (Value, error) {
	count := intArg(args, 0, 1)
	text := s.Text()
	if count <= 0 || text == "" {
		return Empty, nil
	}
	if count > maxRepeatLength/len(text) {
		return nil, invalidArgument("repeat", fmt.Errorf("result longer than %d bytes", maxRepeatLength))
	}
	return String(strings.Repeat(text, count)), nil
}

// scalarReplace substitutes pattern matches with literal replacement text.
// Backreferences are not supported.
func scalarReplace(s Scalar, args ...Value) (Value, error) {
	replacement := textArg(args, 1, "")
	if hasRef, _ := backreferencePattern.MatchString(replacement); hasRef {
		return nil, unsupportedOperation("backreferences in replace()")
	}
	re, err := compilePattern("replace", textArg(args, 0, ""))
	if err != nil {
		return nil, err
	}
	count := -1
	if all := arg(args, 2); !IsUndefined(all) && !Truthy(all) {
		count = 1
	}
	result, err := re.ReplaceFunc(s.Text(), func(regexp2.Match) string {
		return replacement
	}, -1, count)
	if err != nil {
		return nil, invalidArgument("replace", err)
	}
	return String(result), nil
}

// scalarRemove deletes the first match of the pattern.
func scalarRemove(s Scalar, args ...Value) (Value, error) {
	pattern := arg(args, 0)
	if IsUndefined(pattern) {
		return s, nil
	}
	re, err := compilePattern("remove", Text(pattern))
	if err != nil {
		return nil, err
	}
	result, err := re.ReplaceFunc(s.Text(), func(regexp2.Match) string {
		return ""
	}, -1, 1)
	if err != nil {
		return nil, invalidArgument("remove", err)
	}
	return String(result), nil
}

// scalarSplit splits on a literal separator, or on runs of whitespace when
// no separator is given. A limit caps the number of splits.
func scalarSplit(s Scalar, args ...Value) (Value, error) {
	text := s.Text()
	limit := intArg(args, 1, -1)
	var parts []string
	if sep := arg(args, 0); IsUndefined(sep) {
		parts = splitFields(text, limit)
	} else if limit >= 0 {
		parts = strings.SplitN(text, Text(sep), limit+1)
	} else {
		parts = strings.Split(text, Text(sep))
	}
	l := &List{Items: make([]Value, 0, len(parts))}
	for _, part := range parts {
		l.Items = append(l.Items, String(part))
	}
	return l, nil
}

// splitFields splits on whitespace runs, leaving the remainder after limit
// splits intact.
func splitFields(text string, limit int) []string {
	if limit < 0 {
		return strings.Fields(text)
	}
	var parts []string
	rest := strings.TrimLeftFunc(text, unicode.IsSpace)
	for rest != "" {
		if len(parts) == limit {
			parts = append(parts, rest)
			break
		}
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			parts = append(parts, rest)
			break
		}
		parts = append(parts, rest[:end])
		rest = strings.TrimLeftFunc(rest[end:], unicode.IsSpace)
	}
	return parts
}

// scalarChunk cuts the text into fixed-width pieces. A negative size cuts
// from the right, so any short piece comes first.
func scalarChunk(s Scalar, args ...Value) (Value, error) {
	size := intArg(args, 0, 1)
	if size == 0 {
		return nil, invalidArgument("chunk", errors.New("chunk size must not be zero"))
	}
	runes := []rune(s.Text())
	n := len(runes)
	if n == 0 {
		return NewList(), nil
	}
	size = max(min(size, n), -n)
	var chunks []Value
	if size > 0 {
		for pos := 0; pos < n; pos += size {
			chunks = append(chunks, String(string(runes[pos:min(pos+size, n)])))
		}
		return NewList(chunks...), nil
	}
	for pos := n + size; pos > size; pos += size {
		chunks = append(chunks, String(string(runes[max(pos, 0):pos-size])))
	}
	for i, j := 0, len(chunks)-1; i < j; i, j = i+1, j-1 {
		chunks[i], chunks[j] = chunks[j], chunks[i]
	}
	return NewList(chunks...), nil
}

// scalarSubstr returns length characters from offset. A negative offset
// counts from the end; a negative length leaves that many characters off
// the end. Without a length the rest of the text is returned.
func scalarSubstr(s Scalar, args ...Value) (Value, error) {
	runes := []rune(s.Text())
	n := len(runes)
	start := clampIndex(intArg(args, 0, 0), n)
	end := n
	if length := arg(args, 1); !IsUndefined(length) {
		end = windowEnd(start, int(toLong(length)), n)
	}
	return String(string(runes[start:end])), nil
}
