package registry

import (
	"fmt"
	"path/filepath"
	"strings"

	"wqa/internal/domain"
)

// Filter is a typed expression evaluated against a case's tag set.
type Filter interface {
	Match(tags domain.TagSet) bool
}

type allFilter struct{}

func (allFilter) Match(domain.TagSet) bool { return true }

// All matches every case.
func All() Filter { return allFilter{} }

type tagFilter struct{ tag domain.Tag }

func (f tagFilter) Match(tags domain.TagSet) bool { return tags.Has(f.tag) }

type notFilter struct{ inner Filter }

func (f notFilter) Match(tags domain.TagSet) bool { return !f.inner.Match(tags) }

type andFilter struct{ left, right Filter }

func (f andFilter) Match(tags domain.TagSet) bool {
	return f.left.Match(tags) && f.right.Match(tags)
}

type orFilter struct{ left, right Filter }

func (f orFilter) Match(tags domain.TagSet) bool {
	return f.left.Match(tags) || f.right.Match(tags)
}

// ParseFilter parses a tag filter expression. The grammar supports "and",
// "or", "not" and parentheses over tag terms; terms may carry an optional
// "tag:" prefix. Examples:
//
//	tag:smoke
//	api and smoke
//	(ui or e2e) and not regression
//
// The empty expression matches every case.
func ParseFilter(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return All(), nil
	}
	p := &filterParser{tokens: tokenizeFilter(expr)}
	f, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected token %q in filter", p.tokens[p.pos])
	}
	return f, nil
}

func tokenizeFilter(expr string) []string {
	expr = strings.ReplaceAll(expr, "(", " ( ")
	expr = strings.ReplaceAll(expr, ")", " ) ")
	return strings.Fields(expr)
}

type filterParser struct {
	tokens []string
	pos    int
}

func (p *filterParser) peek() string {
	if p.pos >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *filterParser) next() string {
	tok := p.peek()
	if tok != "" {
		p.pos++
	}
	return tok
}

func (p *filterParser) parseOr() (Filter, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for strings.EqualFold(p.peek(), "or") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orFilter{left: left, right: right}
	}
	return left, nil
}

func (p *filterParser) parseAnd() (Filter, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for strings.EqualFold(p.peek(), "and") {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = andFilter{left: left, right: right}
	}
	return left, nil
}

func (p *filterParser) parseNot() (Filter, error) {
	if strings.EqualFold(p.peek(), "not") {
		p.next()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notFilter{inner: inner}, nil
	}
	return p.parseTerm()
}

func (p *filterParser) parseTerm() (Filter, error) {
	tok := p.next()
	switch {
	case tok == "":
		return nil, fmt.Errorf("unexpected end of filter expression")
	case tok == "(":
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.next() != ")" {
			return nil, fmt.Errorf("missing closing parenthesis in filter")
		}
		return inner, nil
	case tok == ")":
		return nil, fmt.Errorf("unexpected closing parenthesis in filter")
	default:
		name := strings.TrimPrefix(strings.ToLower(tok), "tag:")
		tag := domain.Tag(name)
		if !tag.Known() {
			return nil, fmt.Errorf("unknown tag %q in filter", name)
		}
		return tagFilter{tag: tag}, nil
	}
}

// FilterByName filters cases by ID pattern using wildcard matching.
// Supports patterns like "api/*" or "*forecast*"; a pattern without
// wildcards matches as a substring.
func FilterByName(cases []Case, pattern string) []Case {
	if pattern == "" {
		return cases
	}

	var filtered []Case
	for _, c := range cases {
		if matchName(c.ID, pattern) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func matchName(id, pattern string) bool {
	if matched, err := filepath.Match(pattern, id); err == nil && matched {
		return true
	}

	if strings.ContainsAny(pattern, "*?") {
		// Flexible substring match for patterns like "*forecast*": every
		// non-wildcard fragment must appear in the ID.
		parts := strings.Split(pattern, "*")
		hasNonEmpty := false
		for _, part := range parts {
			if part == "" {
				continue
			}
			hasNonEmpty = true
			if !strings.Contains(id, part) {
				return false
			}
		}
		return hasNonEmpty
	}

	return strings.Contains(id, pattern)
}
