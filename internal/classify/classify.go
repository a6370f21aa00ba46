package classify

// Table maps raw filename suffixes ("deny", "bypass", "market") to the
// short test-type codes embedded in renamed files and X-Test-Type headers.
//
// The source material organizes suffixes by category (positive, negative,
// exclusion). Categories only matter for precedence: the table is flattened
// once, in declaration order, and the first category that defines a raw
// suffix wins. Lookup itself is category-agnostic.
type Table struct {
	flat  map[string]string
	order []Category
}

type Category struct {
	Name     string
	Suffixes map[string]string
}

// New flattens categories in the given order. Duplicate raw suffixes in
// later categories are ignored.
func New(categories ...Category) *Table {
	t := &Table{flat: map[string]string{}, order: categories}
	for _, c := range categories {
		for raw, mapped := range c.Suffixes {
			if _, ok := t.flat[raw]; !ok {
				t.flat[raw] = mapped
			}
		}
	}
	return t
}

// Default is the classification used across the TS corpus.
func Default() *Table {
	return New(
		Category{Name: "positive", Suffixes: map[string]string{
			"deny": "LR",
		}},
		Category{Name: "negative", Suffixes: map[string]string{
			"bypass": "NR",
		}},
		Category{Name: "exclusion", Suffixes: map[string]string{
			"market": "EX",
			"date":   "EX",
		}},
	)
}

// Classify resolves a raw suffix to its mapped code. Unknown suffixes pass
// through unchanged; a malformed suffix must not halt a batch.
func (t *Table) Classify(raw string) string {
	if mapped, ok := t.flat[raw]; ok {
		return mapped
	}
	return raw
}

// Known reports whether the raw suffix is present in the table.
func (t *Table) Known(raw string) bool {
	_, ok := t.flat[raw]
	return ok
}

// Categories returns the category precedence order.
func (t *Table) Categories() []string {
	names := make([]string, len(t.order))
	for i, c := range t.order {
		names[i] = c.Name
	}
	return names
}
