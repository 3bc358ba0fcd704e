package extraction

import (
	"maps"
	"slices"
	"strings"
)

// DishKeywordTable maps a city name to the lowercase keywords used to spot
// its iconic dishes. A table is never mutated after construction.
type DishKeywordTable struct {
	entries map[string][]string
}

var defaultDishKeywords = NewDishKeywordTable(map[string][]string{
	"Paris":    {"croissant", "baguette", "crepe", "escargot", "coq au vin"},
	"New York": {"bagel", "pizza", "pastrami", "cheesecake", "hot dog"},
	"Tokyo":    {"sushi", "ramen", "tempura", "yakitori", "okonomiyaki"},
})

// DefaultDishKeywords returns the built-in keyword table.
func DefaultDishKeywords() DishKeywordTable {
	return defaultDishKeywords
}

// NewDishKeywordTable copies entries into a new table, lowercasing keywords.
func NewDishKeywordTable(entries map[string][]string) DishKeywordTable {
	t := DishKeywordTable{entries: make(map[string][]string, len(entries))}
	for city, keywords := range entries {
		t.entries[city] = normalizeKeywords(keywords)
	}
	return t
}

// With returns a new table holding t's entries overridden by extra. An extra
// city replaces every existing entry whose name matches it case-insensitively.
func (t DishKeywordTable) With(extra map[string][]string) DishKeywordTable {
	merged := maps.Clone(t.entries)
	if merged == nil {
		merged = make(map[string][]string, len(extra))
	}
	for _, city := range slices.Sorted(maps.Keys(extra)) {
		maps.DeleteFunc(merged, func(name string, _ []string) bool {
			return strings.EqualFold(name, city)
		})
		merged[city] = normalizeKeywords(extra[city])
	}
	return DishKeywordTable{entries: merged}
}

// Lookup finds the keywords of a city, trying an exact match before a
// case-insensitive one.
func (t DishKeywordTable) Lookup(city string) ([]string, bool) {
	if kw, ok := t.entries[city]; ok {
		return slices.Clone(kw), true
	}
	for _, name := range t.Cities() {
		if strings.EqualFold(name, city) {
			return slices.Clone(t.entries[name]), true
		}
	}
	return nil, false
}

func (t DishKeywordTable) Cities() []string {
	return slices.Sorted(maps.Keys(t.entries))
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
