package query

import (
	"fmt"
	"strings"
)

// Builder assembles a SQL statement from optional WHERE fragments with
// positional placeholders. Predicates are appended with Add; the builder
// tracks the next placeholder index so callers never hand-number their
// parameters. The patient search repository composes its dynamic filters
// through it.
type Builder struct {
	table   string
	cols    string
	joins   []string
	where   string
	args    []interface{}
	idx     int
	orderBy string
}

// New creates a Builder selecting cols from table.
func New(table, cols string) *Builder {
	return &Builder{
		table: table,
		cols:  cols,
		idx:   1,
	}
}

// Idx returns the next available placeholder index. Callers embed it in
// clauses passed to Add, e.g. fmt.Sprintf("p.gender = $%d", b.Idx()).
func (b *Builder) Idx() int { return b.idx }

// Add appends a WHERE clause fragment (without leading "AND") and its
// bound arguments.
func (b *Builder) Add(clause string, args ...interface{}) {
	b.where += " AND " + clause
	b.args = append(b.args, args...)
	b.idx += len(args)
}

// Join appends a JOIN clause (including the JOIN keyword). Joins are
// emitted between the FROM clause and the WHERE clause in the order added.
func (b *Builder) Join(clause string) {
	b.joins = append(b.joins, clause)
}

// OrderBy sets the ORDER BY clause (without the "ORDER BY" keyword).
func (b *Builder) OrderBy(orderBy string) {
	b.orderBy = orderBy
}

// WhereSQL returns the accumulated WHERE fragment, starting with " AND".
// Useful in tests asserting clause composition.
func (b *Builder) WhereSQL() string { return b.where }

// Args returns the bound arguments accumulated so far.
func (b *Builder) Args() []interface{} { return b.args }

// CountSQL returns a COUNT query over the same FROM/JOIN/WHERE shape.
func (b *Builder) CountSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s WHERE 1=1%s", b.table, b.joinSQL(), b.where)
}

// SQL returns the data query with ORDER BY but no paging.
func (b *Builder) SQL() string {
	sql := fmt.Sprintf("SELECT %s FROM %s%s WHERE 1=1%s", b.cols, b.table, b.joinSQL(), b.where)
	if b.orderBy != "" {
		sql += " ORDER BY " + b.orderBy
	}
	return sql
}

// PagedSQL returns the data query with ORDER BY and LIMIT/OFFSET placeholders
// appended after the accumulated predicate parameters.
func (b *Builder) PagedSQL() string {
	return b.SQL() + fmt.Sprintf(" LIMIT $%d OFFSET $%d", b.idx, b.idx+1)
}

// PagedArgs returns the arguments for PagedSQL (predicate args + limit + offset).
func (b *Builder) PagedArgs(limit, offset int) []interface{} {
	result := make([]interface{}, len(b.args)+2)
	copy(result, b.args)
	result[len(b.args)] = limit
	result[len(b.args)+1] = offset
	return result
}

func (b *Builder) joinSQL() string {
	if len(b.joins) == 0 {
		return ""
	}
	return " " + strings.Join(b.joins, " ")
}
