package resolver

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	"github.com/KirkDiggler/realm-content/internal/reference"
)

// matchesFilters reports whether entry satisfies every filter
func matchesFilters(entry *catalog.Node, filters []reference.Filter) bool {
	for _, f := range filters {
		if !matchesFilter(entry, f) {
			return false
		}
	}
	return true
}

func matchesFilter(entry *catalog.Node, f reference.Filter) bool {
	actual, missing := descend(entry, f.Property)
	if missing != "" {
		return false
	}
	if f.Op == reference.OpExists {
		return true
	}

	if b, ok := actual.Bool(); ok {
		want, err := strconv.ParseBool(f.Value)
		if err != nil {
			return false
		}
		switch f.Op {
		case reference.OpEq:
			return b == want
		case reference.OpNe:
			return b != want
		}
		return false
	}

	// "=true" on a non-bool only asks that the property is set
	if f.Op == reference.OpEq && strings.EqualFold(f.Value, "true") {
		return true
	}

	if n, ok := actual.Float(); ok {
		want, err := strconv.ParseFloat(f.Value, 64)
		if err != nil {
			return false
		}
		switch f.Op {
		case reference.OpEq:
			return n == want
		case reference.OpNe:
			return n != want
		case reference.OpLt:
			return n < want
		case reference.OpLe:
			return n <= want
		case reference.OpGt:
			return n > want
		case reference.OpGe:
			return n >= want
		}
		return false
	}

	text := actual.Text()
	switch f.Op {
	case reference.OpEq:
		return strings.EqualFold(text, f.Value)
	case reference.OpNe:
		return !strings.EqualFold(text, f.Value)
	}
	return false
}
