// Package classify holds the ordered rule tables that map a listing's
// category and free-text subcategory to risk tier and evidence requirements.
// Rule order is part of the behaviour: the first matching rule wins.
package classify

import (
	"strings"

	"gearshare-backend/internal/domain"
)

// Matcher reports whether a rule applies to an item.
type Matcher func(domain.ItemClass) bool

// Rule pairs a matcher with the value it yields.
type Rule[T any] struct {
	Name   string
	Match  Matcher
	Result T
}

// First evaluates rules in order and returns the first match, or fallback.
func First[T any](rules []Rule[T], item domain.ItemClass, fallback T) T {
	for _, r := range rules {
		if r.Match(item) {
			return r.Result
		}
	}
	return fallback
}

// CategoryIn matches any of the given categories.
func CategoryIn(categories ...domain.Category) Matcher {
	return func(item domain.ItemClass) bool {
		for _, c := range categories {
			if item.Category == c {
				return true
			}
		}
		return false
	}
}

// SubcategoryContains matches when the subcategory contains any needle,
// ignoring case.
func SubcategoryContains(needles ...string) Matcher {
	return func(item domain.ItemClass) bool {
		sub := strings.ToLower(item.Subcategory)
		for _, n := range needles {
			if strings.Contains(sub, strings.ToLower(n)) {
				return true
			}
		}
		return false
	}
}

func All(ms ...Matcher) Matcher {
	return func(item domain.ItemClass) bool {
		for _, m := range ms {
			if !m(item) {
				return false
			}
		}
		return true
	}
}

func Any(ms ...Matcher) Matcher {
	return func(item domain.ItemClass) bool {
		for _, m := range ms {
			if m(item) {
				return true
			}
		}
		return false
	}
}

func Not(m Matcher) Matcher {
	return func(item domain.ItemClass) bool {
		return !m(item)
	}
}
