// Package pattern matches names against Redis style glob patterns.
//
//	*      any run of bytes, including none
//	?      exactly one byte
//	[abc]  one byte of the set; ranges like [a-z] and negation [^a] are allowed
//	\x     the literal byte x
package pattern

import (
	"errors"
	"fmt"
)

type kind uint8

const (
	literal kind = iota
	star
	single
	class
)

type token struct {
	kind   kind
	symbol byte
	set    *[256]bool
}

func (t token) accepts(b byte) bool {
	switch t.kind {
	case single:
		return true
	case literal:
		return t.symbol == b
	case class:
		return t.set[b]
	}
	return false
}

type Pattern struct {
	source string
	tokens []token
}

var ErrUnterminatedClass = errors.New("unterminated character class")

// Parse compiles p. A trailing backslash matches a literal backslash.
func Parse(p string) (*Pattern, error) {
	tokens := make([]token, 0, len(p))
	for i := 0; i < len(p); i++ {
		switch ch := p[i]; ch {
		case '*':
			// consecutive stars match the same as one
			if n := len(tokens); n == 0 || tokens[n-1].kind != star {
				tokens = append(tokens, token{kind: star})
			}
		case '?':
			tokens = append(tokens, token{kind: single})
		case '[':
			set, next, err := parseClass(p, i+1)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", p, err)
			}
			tokens = append(tokens, token{kind: class, set: set})
			i = next
		case '\\':
			if i+1 < len(p) {
				i++
			}
			tokens = append(tokens, token{kind: literal, symbol: p[i]})
		default:
			tokens = append(tokens, token{kind: literal, symbol: ch})
		}
	}
	return &Pattern{source: p, tokens: tokens}, nil
}

// parseClass reads the class body starting at p[i] and returns the index of
// the closing bracket.
func parseClass(p string, i int) (*[256]bool, int, error) {
	set := &[256]bool{}
	negate := i < len(p) && p[i] == '^'
	if negate {
		i++
	}
	start := i
	for ; i < len(p); i++ {
		ch := p[i]
		if ch == ']' && i > start {
			break
		}
		if ch == '\\' && i+1 < len(p) {
			i++
			ch = p[i]
		}
		if i+2 < len(p) && p[i+1] == '-' && p[i+2] != ']' {
			lo, hi := ch, p[i+2]
			if lo > hi {
				lo, hi = hi, lo
			}
			for c := int(lo); c <= int(hi); c++ {
				set[c] = true
			}
			i += 2
			continue
		}
		set[ch] = true
	}
	if i >= len(p) {
		return nil, 0, ErrUnterminatedClass
	}
	if negate {
		for c := range set {
			set[c] = !set[c]
		}
	}
	return set, i, nil
}

func (p *Pattern) String() string {
	return p.source
}

// IsLiteral reports whether p matches exactly one name.
func (p *Pattern) IsLiteral() bool {
	for _, t := range p.tokens {
		if t.kind != literal {
			return false
		}
	}
	return true
}

// Matches tells if name matches the whole pattern.
func (p *Pattern) Matches(name string) bool {
	n := len(p.tokens)
	// prev[j]: the consumed prefix of name matches the first j tokens
	prev := make([]bool, n+1)
	cur := make([]bool, n+1)
	prev[0] = true
	for j := 1; j <= n; j++ {
		prev[j] = prev[j-1] && p.tokens[j-1].kind == star
	}
	for i := 0; i < len(name); i++ {
		cur[0] = false
		for j := 1; j <= n; j++ {
			t := p.tokens[j-1]
			if t.kind == star {
				// the star takes this byte, or matches empty here
				cur[j] = prev[j] || cur[j-1]
			} else {
				cur[j] = prev[j-1] && t.accepts(name[i])
			}
		}
		prev, cur = cur, prev
	}
	return prev[n]
}

// Filter returns the names matching p, keeping their order.
func (p *Pattern) Filter(names []string) []string {
	var matched []string
	for _, name := range names {
		if p.Matches(name) {
			matched = append(matched, name)
		}
	}
	return matched
}
