package stash

import (
	"sync"

	"github.com/dlclark/regexp2"
)

const maxCachedPatterns = 256

var patternCache = struct {
	sync.Mutex
	entries map[string]*regexp2.Regexp
}{entries: map[string]*regexp2.Regexp{}}

// compilePattern compiles a virtual method pattern. Patterns use
// Perl-compatible syntax. Compiled patterns are cached; the cache is
// dropped wholesale when it fills up.
func compilePattern(op, pattern string) (*regexp2.Regexp, error) {
	patternCache.Lock()
	defer patternCache.Unlock()

	if re, ok := patternCache.entries[pattern]; ok {
		return re, nil
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, invalidArgument(op, err)
	}
	if len(patternCache.entries) >= maxCachedPatterns {
		patternCache.entries = map[string]*regexp2.Regexp{}
	}
	patternCache.entries[pattern] = re
	return re, nil
}

// groupValue returns a capture group's text, or Undefined when the group
// did not take part in the match.
func groupValue(g regexp2.Group) Value {
	if len(g.Captures) == 0 {
		return Undefined
	}
	return String(g.String())
}
