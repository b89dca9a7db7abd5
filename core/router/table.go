package router

import (
	"regexp"

	"github.com/specx2/openapi-router/core/ir"
)

// Entry is one compiled route: a path template's pattern, its capture
// slots, the declarations shared by all of its operations, and the
// operation declared per method.
type Entry struct {
	Template   string
	Pattern    *regexp.Regexp
	SlotNames  []string
	Parameters []ir.ParameterInfo
	Operations map[string]*ir.Operation
	Item       *ir.PathItem
}

// Table holds every route of one description, in declaration order. Once
// built it is immutable and safe for concurrent readers; replacing the
// description means building a fresh table.
type Table struct {
	entries     []*Entry
	description *ir.Description
}

// Build compiles every path template of the description into a route
// table. The table's lookup order is exactly the description's declaration
// order, which makes matching deterministic when templates structurally
// overlap. A template that cannot be compiled aborts the build with a
// TemplateError.
func Build(description *ir.Description) (*Table, error) {
	entries := make([]*Entry, 0, len(description.Paths))
	for _, p := range description.Paths {
		pattern, slotNames, err := compileTemplate(description.BasePath, p.Template)
		if err != nil {
			return nil, err
		}

		entry := &Entry{
			Template:  p.Template,
			Pattern:   pattern,
			SlotNames: slotNames,
			Item:      p.Item,
		}
		if p.Item != nil {
			entry.Parameters = p.Item.Parameters
			entry.Operations = p.Item.Operations
		}
		entries = append(entries, entry)
	}

	return &Table{entries: entries, description: description}, nil
}

// Description returns the description the table was built from.
func (t *Table) Description() *ir.Description {
	return t.description
}

// Entries returns the routes in declaration order.
func (t *Table) Entries() []*Entry {
	return t.entries
}

// Current returns the table itself, letting a bare *Table serve as a
// static table source where callers otherwise accept a hot-reloading one.
func (t *Table) Current() *Table {
	return t
}
